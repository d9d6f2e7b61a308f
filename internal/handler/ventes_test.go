package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"seratauto/internal/dto"
	"seratauto/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVenteService returns canned results so the HTTP mapping can be tested
// in isolation.
type stubVenteService struct {
	createErr error
	updateErr error
	resp      *dto.VenteResponse
}

func (s *stubVenteService) Create(_ context.Context, _ dto.CreateVenteRequest) (*dto.VenteResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.resp, nil
}

func (s *stubVenteService) Get(_ context.Context, _ uuid.UUID) (*dto.VenteResponse, error) {
	return s.resp, nil
}

func (s *stubVenteService) List(_ context.Context, _ dto.VenteFilter) (*dto.VenteListResponse, error) {
	return &dto.VenteListResponse{}, nil
}

func (s *stubVenteService) Update(_ context.Context, _ uuid.UUID, _ dto.UpdateVenteRequest) (*dto.VenteResponse, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.resp, nil
}

func (s *stubVenteService) Delete(_ context.Context, _ uuid.UUID) error  { return nil }
func (s *stubVenteService) Restore(_ context.Context, _ uuid.UUID) error { return nil }

var _ service.VenteService = (*stubVenteService)(nil)

func newVentesRouter(svc service.VenteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewVentesHandler(svc)
	r := gin.New()
	r.POST("/ventes", h.Create)
	r.PUT("/ventes/:id", h.Update)
	return r
}

func postVente(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/ventes", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func minimalVenteBody() string {
	return `{"customer":"` + uuid.NewString() + `","paymentType":"comptant"}`
}

func TestVentesCreate_RegleMetierRend422(t *testing.T) {
	svc := &stubVenteService{
		createErr: &service.RuleError{Msg: "une vente doit comporter au moins un article ou une prestation"},
	}
	w := postVente(t, newVentesRouter(svc), minimalVenteBody())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "au moins un article")
}

func TestVentesCreate_ReferenceInvalideRend400(t *testing.T) {
	svc := &stubVenteService{createErr: errors.New("client introuvable")}
	w := postVente(t, newVentesRouter(svc), minimalVenteBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "client introuvable")
}

func TestVentesCreate_Succes(t *testing.T) {
	svc := &stubVenteService{resp: &dto.VenteResponse{ID: uuid.NewString(), PaymentStatus: "paid"}}
	w := postVente(t, newVentesRouter(svc), minimalVenteBody())

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestVentesUpdate_RegleMetierRend422(t *testing.T) {
	svc := &stubVenteService{
		updateErr: &service.RuleError{Msg: "une vente entièrement payée ne peut plus être modifiée"},
	}
	r := newVentesRouter(svc)

	req, err := http.NewRequest(http.MethodPut, "/ventes/"+uuid.NewString(), bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
