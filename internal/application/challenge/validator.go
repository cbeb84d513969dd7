package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// Acceptance es el resultado de una validación exitosa. Lo consume el
// flujo de registro de asistencia; el validador no escribe asistencias.
type Acceptance struct {
	LocationID  string
	Kind        entity.ChallengeKind
	IdentityID  string
	ValidatedAt time.Time
}

// Validator decide la aceptación de un (ubicación, kind, valor) enviado
// desde el móvil y aplica la semántica de un solo uso del QR.
//
// Color/numeric son de solo lectura: muchos empleados validan legítimamente
// el mismo código de la pantalla. El QR hace una única escritura
// condicional; dos escaneos en carrera producen exactamente un éxito.
type Validator struct {
	repo repository.ChallengeRepository
	cfg  Config
	now  func() time.Time
}

// NewValidator construye el validador.
func NewValidator(repo repository.ChallengeRepository, cfg Config) *Validator {
	return &Validator{repo: repo, cfg: cfg.normalized(), now: time.Now}
}

// WithNow inyecta el reloj (tests). Devuelve el mismo validador.
func (v *Validator) WithNow(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate aplica, en orden:
//  1. sin challenge emitido nunca           → ErrChallengeNotFound
//  2. el último emitido ya expiró           → ErrChallengeExpired
//  3. valor ≠ activo (normalizado por kind) → ErrCodeMismatch
//  4. QR con valor correcto pero consumido  → ErrAlreadyConsumed
//
// La supersesión invalida de inmediato: si hay un código activo más nuevo,
// el valor viejo falla con ErrCodeMismatch aunque su propia ventana
// nominal no haya vencido.
func (v *Validator) Validate(ctx context.Context, locationID string, kind entity.ChallengeKind, value, identityID string) (*Acceptance, error) {
	if locationID == "" || value == "" {
		return nil, domain.ErrInvalidInput
	}

	now := v.now()
	var active *entity.Challenge
	err := withRetry(ctx, v.cfg.StoreRetries, func() error {
		var e error
		active, e = v.repo.GetActive(ctx, locationID, kind, now)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("leer challenge activo: %w", err)
	}

	if active == nil {
		latest, err := v.repo.GetLatest(ctx, locationID, kind)
		if err != nil {
			return nil, fmt.Errorf("leer último challenge: %w", err)
		}
		if latest == nil {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, domain.ErrChallengeExpired
	}

	if !active.Matches(value) {
		return nil, domain.ErrCodeMismatch
	}

	if kind == entity.KindQR {
		if active.Consumed() {
			return nil, domain.ErrAlreadyConsumed
		}
		consumed, err := v.repo.ConsumeIfUnconsumed(ctx, active.ID, identityID, now)
		if err != nil {
			return nil, fmt.Errorf("consumir qr: %w", err)
		}
		if !consumed {
			// Perdimos la carrera contra otro escaneo del mismo valor.
			return nil, domain.ErrAlreadyConsumed
		}
	}

	return &Acceptance{
		LocationID:  locationID,
		Kind:        kind,
		IdentityID:  identityID,
		ValidatedAt: now,
	}, nil
}
