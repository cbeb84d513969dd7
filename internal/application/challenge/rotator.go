package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
	"github.com/tu-usuario/asistencia-pro/pkg/logger"
)

// rotatingKinds kinds que rotan en el scheduler. El QR se emite bajo
// demanda y expira por su propio TTL.
var rotatingKinds = []entity.ChallengeKind{entity.KindColor, entity.KindNumeric}

// Rotator es el scheduler de rotación: un timer cancelable por ubicación
// que emite códigos frescos de color y numeric cada periodo. Cada
// ubicación rota de forma independiente y concurrente.
//
// Un tick fallido deja el código anterior activo hasta su expiración
// natural; el siguiente tick vuelve a intentar, de modo que la pantalla
// nunca queda sin código más de una rotación perdida.
type Rotator struct {
	gen  *Generator
	repo repository.ChallengeRepository
	log  *logger.Logger
	cfg  Config

	mu      sync.Mutex
	base    context.Context
	cancels map[string]context.CancelFunc // por locationID
	waits   map[string]*sync.WaitGroup    // timers vivos por locationID
	wg      sync.WaitGroup
	started bool
}

// NewRotator construye el scheduler de rotación.
func NewRotator(gen *Generator, repo repository.ChallengeRepository, log *logger.Logger, cfg Config) *Rotator {
	return &Rotator{
		gen:     gen,
		repo:    repo,
		log:     log,
		cfg:     cfg.normalized(),
		cancels: make(map[string]context.CancelFunc),
		waits:   make(map[string]*sync.WaitGroup),
	}
}

// Start fija el contexto base del scheduler. Las ubicaciones se agregan
// con ScheduleLocation; cancelar ctx detiene todas las rotaciones.
func (r *Rotator) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = ctx
	r.started = true
}

// ScheduleLocation inicia la rotación de color y numeric para la
// ubicación. Idempotente: una ubicación ya agendada no se duplica.
func (r *Rotator) ScheduleLocation(locationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	if _, ok := r.cancels[locationID]; ok {
		return
	}
	ctx, cancel := context.WithCancel(r.base)
	r.cancels[locationID] = cancel
	lwg := &sync.WaitGroup{}
	r.waits[locationID] = lwg
	for _, kind := range rotatingKinds {
		r.wg.Add(1)
		lwg.Add(1)
		go r.rotate(ctx, locationID, kind, lwg)
	}
	r.log.Info().Str("location_id", locationID).Msg("rotación de códigos agendada")
}

// CancelLocation detiene la rotación de la ubicación y fuerza la
// expiración inmediata de sus códigos activos, para que nada quede
// mostrable como vigente tras una desactivación.
func (r *Rotator) CancelLocation(ctx context.Context, locationID string) error {
	r.mu.Lock()
	if cancel, ok := r.cancels[locationID]; ok {
		cancel()
		delete(r.cancels, locationID)
	}
	lwg := r.waits[locationID]
	delete(r.waits, locationID)
	r.mu.Unlock()

	// Drenar los timers antes de expirar: un tick en vuelo no debe
	// re-emitir un código después de la expiración forzada.
	if lwg != nil {
		lwg.Wait()
	}

	err := withRetry(ctx, r.cfg.StoreRetries, func() error {
		return r.repo.ExpireActive(ctx, locationID, "", time.Now())
	})
	if err != nil {
		return err
	}
	r.log.Info().Str("location_id", locationID).Msg("rotación cancelada y códigos expirados")
	return nil
}

// Stop cancela todas las rotaciones y espera a que terminen los timers.
func (r *Rotator) Stop() {
	r.mu.Lock()
	for id, cancel := range r.cancels {
		cancel()
		delete(r.cancels, id)
	}
	for id := range r.waits {
		delete(r.waits, id)
	}
	r.started = false
	r.mu.Unlock()
	r.wg.Wait()
}

// rotate es el loop de un (ubicación, kind): emite de inmediato y luego
// en cada tick del periodo hasta que el contexto se cancele.
func (r *Rotator) rotate(ctx context.Context, locationID string, kind entity.ChallengeKind, lwg *sync.WaitGroup) {
	defer r.wg.Done()
	defer lwg.Done()

	r.tick(ctx, locationID, kind)

	ticker := time.NewTicker(r.cfg.RotationPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx, locationID, kind)
		}
	}
}

func (r *Rotator) tick(ctx context.Context, locationID string, kind entity.ChallengeKind) {
	if ctx.Err() != nil {
		return
	}
	if _, err := r.gen.Generate(ctx, locationID, kind); err != nil {
		// El código previo sigue activo hasta su expiración natural;
		// el siguiente tick reintenta.
		r.log.Warn().Err(err).
			Str("location_id", locationID).
			Str("kind", string(kind)).
			Msg("fallo al rotar código, se reintenta en el siguiente tick")
	}
}
