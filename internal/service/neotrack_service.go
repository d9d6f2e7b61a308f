package service

import (
	"context"
	"errors"
	"time"

	"seratauto/internal/dto"
	"seratauto/internal/infra"
	"seratauto/internal/model"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrPlatformUnavailable is returned while the Neotrack circuit breaker is
// open; handlers map it to 503.
var ErrPlatformUnavailable = errors.New("plateforme Neotrack indisponible, réessayez plus tard")

// NeotrackGateway abstracts the Neotrack platform client so unit tests can
// stub it. *infra.NeotrackClient is the production implementation.
type NeotrackGateway interface {
	Activate(ctx context.Context, imei string) error
	Deactivate(ctx context.Context, imei string) error
	Position(ctx context.Context, imei string) (*infra.NeotrackPosition, error)
}

type NeotrackService interface {
	Create(ctx context.Context, req dto.CreateNeotrackRequest) (*dto.NeotrackResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NeotrackResponse, error)
	List(ctx context.Context, filter dto.NeotrackFilter) (*dto.NeotrackListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateNeotrackRequest) (*dto.NeotrackResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*dto.NeotrackResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*dto.NeotrackResponse, error)
	Position(ctx context.Context, id uuid.UUID) (*dto.NeotrackPositionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type neotrackService struct {
	repo         repository.NeotrackRepository
	customerRepo repository.CustomerRepository
	carRepo      repository.CarRepository
	gateway      NeotrackGateway
	cb           *infra.CircuitBreaker
}

func NewNeotrackService(
	repo repository.NeotrackRepository,
	customerRepo repository.CustomerRepository,
	carRepo repository.CarRepository,
	gateway NeotrackGateway,
	cb *infra.CircuitBreaker,
) NeotrackService {
	return &neotrackService{
		repo:         repo,
		customerRepo: customerRepo,
		carRepo:      carRepo,
		gateway:      gateway,
		cb:           cb,
	}
}

func mapNeotrack(n *model.Neotrack) dto.NeotrackResponse {
	resp := dto.NeotrackResponse{
		ID:         n.ID.String(),
		IMEI:       n.IMEI,
		SimNumber:  n.SimNumber,
		DeviceType: n.DeviceType,
		Status:     n.Status,
		Deleted:    n.DeletedAt.Valid,
	}
	if n.CustomerID != nil {
		id := n.CustomerID.String()
		resp.Customer = &id
	}
	if n.CarID != nil {
		id := n.CarID.String()
		resp.Car = &id
	}
	if n.LastSeenAt != nil {
		seen := n.LastSeenAt.Format(time.RFC3339)
		resp.LastSeenAt = &seen
	}
	return resp
}

func (s *neotrackService) Create(ctx context.Context, req dto.CreateNeotrackRequest) (*dto.NeotrackResponse, error) {
	existing, err := s.repo.FindByIMEI(ctx, req.IMEI)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("un traceur avec cet IMEI existe déjà")
	}

	n := &model.Neotrack{
		IMEI:       req.IMEI,
		SimNumber:  req.SimNumber,
		DeviceType: req.DeviceType,
		Status:     "inactif",
	}
	if req.Customer != nil {
		cid, err := uuid.Parse(*req.Customer)
		if err != nil {
			return nil, errors.New("identifiant de client invalide")
		}
		if _, err := s.customerRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("client introuvable")
		}
		n.CustomerID = &cid
	}
	if req.Car != nil {
		carID, err := uuid.Parse(*req.Car)
		if err != nil {
			return nil, errors.New("identifiant de véhicule invalide")
		}
		if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
			return nil, errors.New("véhicule introuvable")
		}
		n.CarID = &carID
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	resp := mapNeotrack(n)
	return &resp, nil
}

func (s *neotrackService) Get(ctx context.Context, id uuid.UUID) (*dto.NeotrackResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("traceur introuvable")
		}
		return nil, err
	}
	resp := mapNeotrack(n)
	return &resp, nil
}

func (s *neotrackService) List(ctx context.Context, filter dto.NeotrackFilter) (*dto.NeotrackListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	devices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.NeotrackResponse, 0, len(devices))
	for i := range devices {
		data = append(data, mapNeotrack(&devices[i]))
	}
	return &dto.NeotrackListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *neotrackService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateNeotrackRequest) (*dto.NeotrackResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("traceur introuvable")
		}
		return nil, err
	}

	if req.SimNumber != nil {
		n.SimNumber = req.SimNumber
	}
	if req.DeviceType != nil {
		n.DeviceType = req.DeviceType
	}
	if req.Customer != nil {
		cid, err := uuid.Parse(*req.Customer)
		if err != nil {
			return nil, errors.New("identifiant de client invalide")
		}
		if _, err := s.customerRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("client introuvable")
		}
		n.CustomerID = &cid
	}
	if req.Car != nil {
		carID, err := uuid.Parse(*req.Car)
		if err != nil {
			return nil, errors.New("identifiant de véhicule invalide")
		}
		if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
			return nil, errors.New("véhicule introuvable")
		}
		n.CarID = &carID
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	resp := mapNeotrack(n)
	return &resp, nil
}

// Activate calls the platform through the circuit breaker. A platform
// failure marks the device "erreur" so the dashboard surfaces it.
func (s *neotrackService) Activate(ctx context.Context, id uuid.UUID) (*dto.NeotrackResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("traceur introuvable")
		}
		return nil, err
	}

	cbErr := s.cb.Execute(func() error {
		return s.gateway.Activate(ctx, n.IMEI)
	})
	if cbErr != nil {
		if errors.Is(cbErr, infra.ErrCircuitOpen) {
			return nil, ErrPlatformUnavailable
		}
		_ = s.repo.UpdateStatus(ctx, id, "erreur", nil)
		return nil, errors.New("échec de l'activation du traceur")
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, "actif", &now); err != nil {
		return nil, err
	}
	n.Status = "actif"
	n.LastSeenAt = &now
	resp := mapNeotrack(n)
	return &resp, nil
}

func (s *neotrackService) Deactivate(ctx context.Context, id uuid.UUID) (*dto.NeotrackResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("traceur introuvable")
		}
		return nil, err
	}

	cbErr := s.cb.Execute(func() error {
		return s.gateway.Deactivate(ctx, n.IMEI)
	})
	if cbErr != nil {
		if errors.Is(cbErr, infra.ErrCircuitOpen) {
			return nil, ErrPlatformUnavailable
		}
		_ = s.repo.UpdateStatus(ctx, id, "erreur", nil)
		return nil, errors.New("échec de la désactivation du traceur")
	}

	if err := s.repo.UpdateStatus(ctx, id, "inactif", nil); err != nil {
		return nil, err
	}
	n.Status = "inactif"
	resp := mapNeotrack(n)
	return &resp, nil
}

func (s *neotrackService) Position(ctx context.Context, id uuid.UUID) (*dto.NeotrackPositionResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("traceur introuvable")
		}
		return nil, err
	}
	if n.Status != "actif" {
		return nil, errors.New("le traceur n'est pas actif")
	}

	var pos *infra.NeotrackPosition
	cbErr := s.cb.Execute(func() error {
		var posErr error
		pos, posErr = s.gateway.Position(ctx, n.IMEI)
		return posErr
	})
	if cbErr != nil {
		if errors.Is(cbErr, infra.ErrCircuitOpen) {
			return nil, ErrPlatformUnavailable
		}
		return nil, errors.New("position indisponible")
	}

	now := time.Now()
	_ = s.repo.UpdateStatus(ctx, id, "actif", &now)

	return &dto.NeotrackPositionResponse{
		IMEI:      pos.IMEI,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Speed:     pos.Speed,
		Heading:   pos.Heading,
		Timestamp: pos.Timestamp,
	}, nil
}

func (s *neotrackService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("traceur introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *neotrackService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
