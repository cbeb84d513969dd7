package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

var _ repository.ChallengeRepository = (*ChallengeRepo)(nil)

// ChallengeRepo implementación del puerto ChallengeRepository sobre PostgreSQL.
// Acepta el pool o una pgx.Tx para participar en transacciones.
type ChallengeRepo struct {
	db dbtx
}

// NewChallengeRepository construye el adaptador de persistencia de challenges.
func NewChallengeRepository(db dbtx) *ChallengeRepo {
	return &ChallengeRepo{db: db}
}

const challengeColumns = `id, location_id, kind, value, issued_at, expires_at, consumed_by, consumed_at`

// GetActive devuelve el challenge vigente para (location, kind) o nil.
func (r *ChallengeRepo) GetActive(ctx context.Context, locationID string, kind entity.ChallengeKind, now time.Time) (*entity.Challenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM challenges
		WHERE location_id = $1 AND kind = $2 AND issued_at <= $3 AND expires_at > $3
		ORDER BY issued_at DESC
		LIMIT 1`
	return r.scanOne(ctx, query, locationID, string(kind), now)
}

// GetLatest devuelve el último challenge emitido aunque esté expirado.
func (r *ChallengeRepo) GetLatest(ctx context.Context, locationID string, kind entity.ChallengeKind) (*entity.Challenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM challenges
		WHERE location_id = $1 AND kind = $2
		ORDER BY issued_at DESC
		LIMIT 1`
	return r.scanOne(ctx, query, locationID, string(kind))
}

// Supersede expira el activo previo e inserta el nuevo en una sola
// sentencia (CTE): un lector nunca observa dos challenges activos del
// mismo (location, kind). El previo muere exactamente cuando nace el nuevo.
func (r *ChallengeRepo) Supersede(ctx context.Context, c *entity.Challenge) error {
	query := `
		WITH superseded AS (
			UPDATE challenges
			SET expires_at = $5
			WHERE location_id = $2 AND kind = $3 AND expires_at > $5
		)
		INSERT INTO challenges (id, location_id, kind, value, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.LocationID, string(c.Kind), c.Value, c.IssuedAt, c.ExpiresAt,
	)
	if err != nil {
		return storeErr("insert challenge", err)
	}
	return nil
}

// ConsumeIfUnconsumed marca el QR como consumido con un update condicional
// único: de dos escaneos en carrera del mismo valor, exactamente uno ve
// rows_affected = 1.
func (r *ChallengeRepo) ConsumeIfUnconsumed(ctx context.Context, challengeID, identityID string, at time.Time) (bool, error) {
	query := `
		UPDATE challenges
		SET consumed_by = $2, consumed_at = $3
		WHERE id = $1 AND consumed_by IS NULL`
	tag, err := r.db.Exec(ctx, query, challengeID, identityID, at)
	if err != nil {
		return false, storeErr("consumir challenge", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ExpireActive fuerza la expiración inmediata de los challenges activos de
// la ubicación. kind vacío expira todos los kinds (desactivación).
func (r *ChallengeRepo) ExpireActive(ctx context.Context, locationID string, kind entity.ChallengeKind, at time.Time) error {
	query := `
		UPDATE challenges
		SET expires_at = $3
		WHERE location_id = $1 AND expires_at > $3 AND ($2 = '' OR kind = $2)`
	_, err := r.db.Exec(ctx, query, locationID, string(kind), at)
	if err != nil {
		return storeErr("expirar challenges", err)
	}
	return nil
}

func (r *ChallengeRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Challenge, error) {
	var c entity.Challenge
	var kind string
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.LocationID, &kind, &c.Value, &c.IssuedAt, &c.ExpiresAt,
		&c.ConsumedBy, &c.ConsumedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get challenge", err)
	}
	c.Kind = entity.ChallengeKind(kind)
	return &c, nil
}
