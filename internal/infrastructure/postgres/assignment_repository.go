package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo lectura de asignaciones identidad→ubicación. La tabla la
// escribe el módulo de RRHH; aquí solo se consulta.
type AssignmentRepo struct {
	db dbtx
}

// NewAssignmentRepository construye el adaptador de lectura de asignaciones.
func NewAssignmentRepository(db dbtx) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// EmployeeLocation devuelve la ubicación asignada al empleado o "".
func (r *AssignmentRepo) EmployeeLocation(ctx context.Context, identityID string) (string, error) {
	query := `
		SELECT location_id
		FROM assignments
		WHERE identity_id = $1
		ORDER BY assigned_at ASC
		LIMIT 1`
	var locID string
	err := r.db.QueryRow(ctx, query, identityID).Scan(&locID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", storeErr("asignación de empleado", err)
	}
	return locID, nil
}

// ManagerLocations devuelve las ubicaciones del encargado ordenadas por
// fecha de asignación: la primera es la principal.
func (r *AssignmentRepo) ManagerLocations(ctx context.Context, identityID string) ([]string, error) {
	query := `
		SELECT location_id
		FROM assignments
		WHERE identity_id = $1
		ORDER BY assigned_at ASC`
	rows, err := r.db.Query(ctx, query, identityID)
	if err != nil {
		return nil, storeErr("asignaciones de encargado", err)
	}
	defer rows.Close()
	var locs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan asignación", err)
		}
		locs = append(locs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("asignaciones de encargado", err)
	}
	return locs, nil
}
