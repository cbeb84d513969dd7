package repository

import (
	"context"

	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia para Attendance.
type AttendanceRepository interface {
	Create(ctx context.Context, a *entity.Attendance) error
	ListByIdentity(ctx context.Context, identityID string, limit, offset int) ([]*entity.Attendance, error)
}
