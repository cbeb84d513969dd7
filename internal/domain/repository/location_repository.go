package repository

import (
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(loc *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error)
	ListActive() ([]*entity.Location, error)
	// Deactivate marca la ubicación como inactiva. La cancelación de la
	// rotación y la expiración forzada del código las orquesta el caso de uso.
	Deactivate(id string) error
}
