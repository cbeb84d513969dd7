package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	db dbtx
}

// NewLocationRepository construye el adaptador de persistencia de ubicaciones.
func NewLocationRepository(db dbtx) *LocationRepo {
	return &LocationRepo{db: db}
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(loc *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(context.Background(), query,
		loc.ID, loc.CompanyID, loc.Name, loc.Active, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM locations WHERE id = $1`
	var l entity.Location
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.CompanyID, &l.Name, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by id: %w", err)
	}
	return &l, nil
}

// ListByCompany lista ubicaciones por company con paginación.
func (r *LocationRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM locations WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListActive lista todas las ubicaciones activas (arranque del rotator).
func (r *LocationRepo) ListActive() ([]*entity.Location, error) {
	query := `
		SELECT id, company_id, name, active, created_at, updated_at
		FROM locations WHERE active ORDER BY created_at ASC`
	return r.list(query)
}

// Deactivate marca la ubicación como inactiva.
func (r *LocationRepo) Deactivate(id string) error {
	query := `UPDATE locations SET active = false, updated_at = $2 WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("deactivate location: %w", err)
	}
	return nil
}

func (r *LocationRepo) list(query string, args ...any) ([]*entity.Location, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
