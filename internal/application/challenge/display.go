package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// DisplayUseCase sirve a la pantalla de una ubicación: leer el código
// vigente para mostrarlo y emitir un QR bajo demanda por evento de
// asistencia.
type DisplayUseCase struct {
	repo repository.ChallengeRepository
	gen  *Generator
	cfg  Config
	now  func() time.Time
}

// NewDisplayUseCase construye el caso de uso de pantalla.
func NewDisplayUseCase(repo repository.ChallengeRepository, gen *Generator, cfg Config) *DisplayUseCase {
	return &DisplayUseCase{repo: repo, gen: gen, cfg: cfg.normalized(), now: time.Now}
}

// WithNow inyecta el reloj (tests).
func (uc *DisplayUseCase) WithNow(now func() time.Time) *DisplayUseCase {
	uc.now = now
	return uc
}

// Current devuelve el challenge vigente para (location, kind).
// ErrChallengeNotFound si nunca se emitió; ErrChallengeExpired si el
// último ya venció (la pantalla puede distinguir ambos estados).
func (uc *DisplayUseCase) Current(ctx context.Context, locationID string, kind entity.ChallengeKind) (*entity.Challenge, error) {
	now := uc.now()
	var active *entity.Challenge
	err := withRetry(ctx, uc.cfg.StoreRetries, func() error {
		var e error
		active, e = uc.repo.GetActive(ctx, locationID, kind, now)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("leer challenge activo: %w", err)
	}
	if active != nil {
		return active, nil
	}
	latest, err := uc.repo.GetLatest(ctx, locationID, kind)
	if err != nil {
		return nil, fmt.Errorf("leer último challenge: %w", err)
	}
	if latest == nil {
		return nil, domain.ErrChallengeNotFound
	}
	return nil, domain.ErrChallengeExpired
}

// IssueQR emite un QR nuevo para la ubicación (supersede al anterior:
// solo un QR activo por ubicación).
func (uc *DisplayUseCase) IssueQR(ctx context.Context, locationID string) (*entity.Challenge, error) {
	return uc.gen.Generate(ctx, locationID, entity.KindQR)
}
