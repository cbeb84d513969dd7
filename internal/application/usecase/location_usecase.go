package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// rotationCanceler es lo mínimo que el caso de uso necesita del scheduler
// de rotación para desactivar una ubicación (evita el import del paquete
// challenge completo).
type rotationCanceler interface {
	ScheduleLocation(locationID string)
	CancelLocation(ctx context.Context, locationID string) error
}

// LocationUseCase CRUD de ubicaciones y su ciclo de rotación.
type LocationUseCase struct {
	repo    repository.LocationRepository
	rotator rotationCanceler
}

// NewLocationUseCase construye el caso de uso de ubicaciones.
func NewLocationUseCase(repo repository.LocationRepository, rotator rotationCanceler) *LocationUseCase {
	return &LocationUseCase{repo: repo, rotator: rotator}
}

// Create registra la ubicación y agenda su rotación de códigos.
func (uc *LocationUseCase) Create(companyID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(loc); err != nil {
		return nil, err
	}
	uc.rotator.ScheduleLocation(loc.ID)
	return toLocationResponse(loc), nil
}

// GetByID devuelve la ubicación o ErrNotFound.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(loc), nil
}

// ListByCompany lista las ubicaciones de la company con paginación.
func (uc *LocationUseCase) ListByCompany(companyID string, page dto.PageRequest) ([]*dto.LocationResponse, error) {
	page.DefaultPage()
	locs, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, len(locs))
	for i, loc := range locs {
		out[i] = toLocationResponse(loc)
	}
	return out, nil
}

// Deactivate desactiva la ubicación, cancela su rotación y fuerza la
// expiración de los códigos activos: nada queda mostrable como vigente.
func (uc *LocationUseCase) Deactivate(ctx context.Context, id string) error {
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Deactivate(id); err != nil {
		return err
	}
	return uc.rotator.CancelLocation(ctx, id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		CompanyID: l.CompanyID,
		Name:      l.Name,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
