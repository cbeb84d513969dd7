package challenge_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

// fakeChallengeRepo implementación en memoria del repositorio para ejercitar
// generador, validador y rotator sin base de datos. El mutex reproduce la
// atomicidad que la implementación real obtiene de Postgres.
type fakeChallengeRepo struct {
	mu         sync.Mutex
	challenges []*entity.Challenge // en orden de emisión

	failNextWrites int  // las próximas n escrituras fallan con ErrStoreUnavailable
	failAllWrites  bool // toda escritura falla
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{}
}

func (f *fakeChallengeRepo) writeFailure() error {
	if f.failAllWrites {
		return fmt.Errorf("insert challenge: %w", domain.ErrStoreUnavailable)
	}
	if f.failNextWrites > 0 {
		f.failNextWrites--
		return fmt.Errorf("insert challenge: %w", domain.ErrStoreUnavailable)
	}
	return nil
}

func (f *fakeChallengeRepo) GetActive(_ context.Context, locationID string, kind entity.ChallengeKind, now time.Time) (*entity.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.challenges) - 1; i >= 0; i-- {
		c := f.challenges[i]
		if c.LocationID == locationID && c.Kind == kind && c.Active(now) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChallengeRepo) GetLatest(_ context.Context, locationID string, kind entity.ChallengeKind) (*entity.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.challenges) - 1; i >= 0; i-- {
		c := f.challenges[i]
		if c.LocationID == locationID && c.Kind == kind {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChallengeRepo) Supersede(_ context.Context, c *entity.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writeFailure(); err != nil {
		return err
	}
	for _, old := range f.challenges {
		if old.LocationID == c.LocationID && old.Kind == c.Kind && old.ExpiresAt.After(c.IssuedAt) {
			old.ExpiresAt = c.IssuedAt
		}
	}
	cp := *c
	f.challenges = append(f.challenges, &cp)
	return nil
}

func (f *fakeChallengeRepo) ConsumeIfUnconsumed(_ context.Context, challengeID, identityID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writeFailure(); err != nil {
		return false, err
	}
	for _, c := range f.challenges {
		if c.ID != challengeID {
			continue
		}
		if c.ConsumedBy != nil {
			return false, nil
		}
		id, ts := identityID, at
		c.ConsumedBy = &id
		c.ConsumedAt = &ts
		return true, nil
	}
	return false, nil
}

func (f *fakeChallengeRepo) ExpireActive(_ context.Context, locationID string, kind entity.ChallengeKind, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writeFailure(); err != nil {
		return err
	}
	for _, c := range f.challenges {
		if c.LocationID == locationID && (kind == "" || c.Kind == kind) && c.ExpiresAt.After(at) {
			c.ExpiresAt = at
		}
	}
	return nil
}

// seed inserta un challenge directamente, sin pasar por Supersede.
func (f *fakeChallengeRepo) seed(c entity.Challenge) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenges = append(f.challenges, &c)
}

// fakeClock reloj controlable para fijar instantes exactos en los tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
