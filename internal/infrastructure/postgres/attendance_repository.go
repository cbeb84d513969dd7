package postgres

import (
	"context"

	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implementación del puerto AttendanceRepository sobre PostgreSQL.
type AttendanceRepo struct {
	db dbtx
}

// NewAttendanceRepository construye el adaptador de persistencia de asistencias.
func NewAttendanceRepository(db dbtx) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Create persiste un evento de asistencia.
func (r *AttendanceRepo) Create(ctx context.Context, a *entity.Attendance) error {
	query := `
		INSERT INTO attendances (id, identity_id, location_id, kind, checked_in_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.IdentityID, a.LocationID, string(a.Kind), a.CheckedInAt,
	)
	if err != nil {
		return storeErr("insert attendance", err)
	}
	return nil
}

// ListByIdentity lista asistencias de una identidad, más recientes primero.
func (r *AttendanceRepo) ListByIdentity(ctx context.Context, identityID string, limit, offset int) ([]*entity.Attendance, error) {
	query := `
		SELECT id, identity_id, location_id, kind, checked_in_at
		FROM attendances
		WHERE identity_id = $1
		ORDER BY checked_in_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, identityID, limit, offset)
	if err != nil {
		return nil, storeErr("list attendances", err)
	}
	defer rows.Close()
	var list []*entity.Attendance
	for rows.Next() {
		var a entity.Attendance
		var kind string
		if err := rows.Scan(&a.ID, &a.IdentityID, &a.LocationID, &kind, &a.CheckedInAt); err != nil {
			return nil, storeErr("scan attendance", err)
		}
		a.Kind = entity.ChallengeKind(kind)
		list = append(list, &a)
	}
	return list, rows.Err()
}
