package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// ChallengeRepository define el puerto de persistencia para Challenge (DIP).
//
// Invariante que debe garantizar la implementación: a lo sumo un challenge
// activo por (location, kind); Supersede expira el anterior e inserta el
// nuevo de forma que un lector nunca observe dos activos a la vez.
type ChallengeRepository interface {
	// GetActive devuelve el challenge vigente para (location, kind),
	// o nil si no hay ninguno sin expirar. nil, nil no es error.
	GetActive(ctx context.Context, locationID string, kind entity.ChallengeKind, now time.Time) (*entity.Challenge, error)
	// GetLatest devuelve el último challenge emitido aunque esté expirado,
	// para distinguir "nunca hubo código" de "el código expiró".
	GetLatest(ctx context.Context, locationID string, kind entity.ChallengeKind) (*entity.Challenge, error)
	// Supersede expira el challenge activo previo (si existe) e inserta c,
	// atómicamente respecto a los lectores.
	Supersede(ctx context.Context, c *entity.Challenge) error
	// ConsumeIfUnconsumed marca el QR como consumido solo si aún no lo está
	// (update condicional único: dos escaneos en carrera → un solo éxito).
	// Devuelve false si ya estaba consumido.
	ConsumeIfUnconsumed(ctx context.Context, challengeID, identityID string, at time.Time) (bool, error)
	// ExpireActive fuerza la expiración inmediata de los challenges activos
	// de una ubicación (ej. al desactivarla). kind vacío = todos los kinds.
	ExpireActive(ctx context.Context, locationID string, kind entity.ChallengeKind, at time.Time) error
}
