package challenge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/asistencia-pro/internal/application/challenge"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/pkg/logger"
)

// buildRotator arma un rotator con periodo corto para no dormir segundos
// en los tests. El reloj es real: el rotator agenda con timers de verdad.
func buildRotator(repo *fakeChallengeRepo, period time.Duration) *challenge.Rotator {
	cfg := challenge.DefaultConfig()
	cfg.RotationPeriod = period
	gen := challenge.NewGenerator(repo, cfg)
	return challenge.NewRotator(gen, repo, logger.Nop(), cfg)
}

// waitForActive espera hasta que haya un challenge activo para (loc, kind)
// o vence el plazo.
func waitForActive(t *testing.T, repo *fakeChallengeRepo, kind entity.ChallengeKind) *entity.Challenge {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c, err := repo.GetActive(context.Background(), testLocation, kind, time.Now())
		require.NoError(t, err)
		if c != nil {
			return c
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no se emitió challenge %s dentro del plazo", kind)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Rotator
// ──────────────────────────────────────────────────────────────────────────────

// Al agendar una ubicación se emite de inmediato un código de cada kind
// rotativo, y en el siguiente tick se reemplazan.
func TestRotator_EmiteInmediatoYReemplazaEnCadaTick(t *testing.T) {
	repo := newFakeChallengeRepo()
	r := buildRotator(repo, 30*time.Millisecond)
	r.Start(context.Background())
	defer r.Stop()

	r.ScheduleLocation(testLocation)

	color := waitForActive(t, repo, entity.KindColor)
	numeric := waitForActive(t, repo, entity.KindNumeric)
	assert.Contains(t, entity.ColorPalette, color.Value)
	assert.Len(t, numeric.Value, 4)

	// Tras al menos un tick el activo debe ser una emisión nueva.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c, err := repo.GetActive(context.Background(), testLocation, entity.KindNumeric, time.Now())
		require.NoError(t, err)
		if c != nil && c.ID != numeric.ID {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("el código numérico no rotó dentro del plazo")
}

// ScheduleLocation es idempotente: re-agendar no duplica timers ni rompe.
func TestRotator_ScheduleIdempotente(t *testing.T) {
	repo := newFakeChallengeRepo()
	r := buildRotator(repo, 30*time.Millisecond)
	r.Start(context.Background())
	defer r.Stop()

	r.ScheduleLocation(testLocation)
	r.ScheduleLocation(testLocation)

	waitForActive(t, repo, entity.KindColor)
}

// Sin Start previo, ScheduleLocation es un no-op seguro.
func TestRotator_ScheduleSinStartNoHaceNada(t *testing.T) {
	repo := newFakeChallengeRepo()
	r := buildRotator(repo, 30*time.Millisecond)

	r.ScheduleLocation(testLocation)
	time.Sleep(50 * time.Millisecond)

	c, err := repo.GetActive(context.Background(), testLocation, entity.KindColor, time.Now())
	require.NoError(t, err)
	assert.Nil(t, c, "sin contexto base no debe emitirse nada")
}

// Cancelar una ubicación detiene su rotación y expira sus códigos activos:
// nada queda mostrable como vigente.
func TestRotator_CancelExpiraActivosYDetiene(t *testing.T) {
	repo := newFakeChallengeRepo()
	r := buildRotator(repo, 30*time.Millisecond)
	r.Start(context.Background())
	defer r.Stop()

	r.ScheduleLocation(testLocation)
	waitForActive(t, repo, entity.KindNumeric)

	require.NoError(t, r.CancelLocation(context.Background(), testLocation))

	c, err := repo.GetActive(context.Background(), testLocation, entity.KindNumeric, time.Now())
	require.NoError(t, err)
	assert.Nil(t, c, "tras cancelar no debe quedar código activo")

	// Y no se vuelve a emitir: la rotación quedó detenida.
	time.Sleep(80 * time.Millisecond)
	c, err = repo.GetActive(context.Background(), testLocation, entity.KindNumeric, time.Now())
	require.NoError(t, err)
	assert.Nil(t, c)
}

// Stop cancela todas las ubicaciones y espera a los timers; es seguro
// llamarlo dos veces.
func TestRotator_StopEsperaYEsReentrante(t *testing.T) {
	repo := newFakeChallengeRepo()
	r := buildRotator(repo, 30*time.Millisecond)
	r.Start(context.Background())

	r.ScheduleLocation(testLocation)
	r.ScheduleLocation("otra-ubicacion")
	waitForActive(t, repo, entity.KindColor)

	r.Stop()
	r.Stop()
}
