package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"seratauto/internal/dto"
	"seratauto/internal/model"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context, filter dto.CategoryFilter) ([]model.Category, int64, error) {
	var all []model.Category
	for _, c := range r.categories {
		if c.DeletedAt.Valid {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		c.DeletedAt = gorm.DeletedAt{Valid: true}
	}
	return nil
}

func (r *stubCategoryRepo) Restore(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		c.DeletedAt = gorm.DeletedAt{}
	}
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func seedCategories(t *testing.T, svc CategoryService, names ...string) []dto.CategoryResponse {
	t.Helper()
	out := make([]dto.CategoryResponse, 0, len(names))
	for _, n := range names {
		resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: n})
		require.NoError(t, err)
		out = append(out, resp)
	}
	return out
}

func TestCategoryGet(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())
	created := seedCategories(t, svc, "Traceurs GPS")[0]

	got, err := svc.Get(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Traceurs GPS", got.Name)
}

func TestCategoryGet_Introuvable(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "catégorie introuvable", err.Error())
}

func TestCategoryList_Pagination(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())
	seedCategories(t, svc, "Accessoires", "Batteries", "Éclairage", "Pneus", "Traceurs")

	page1, err := svc.List(context.Background(), dto.CategoryFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page1.Total)
	assert.Len(t, page1.Data, 2)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 2, page1.Limit)

	page3, err := svc.List(context.Background(), dto.CategoryFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page3.Total)
	assert.Len(t, page3.Data, 1)
}

func TestCategoryList_DefaultsApplied(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())
	seedCategories(t, svc, "Accessoires")

	resp, err := svc.List(context.Background(), dto.CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Len(t, resp.Data, 1)
}

func TestCategoryCreate_NomDuplique(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())
	seedCategories(t, svc, "Batteries")

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "batteries"})
	require.Error(t, err)
	assert.Equal(t, "une catégorie avec ce nom existe déjà", err.Error())
}
