package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain"
)

// retryBackoff espera entre reintentos contra el almacén.
const retryBackoff = 100 * time.Millisecond

// withRetry ejecuta fn y la reintenta hasta retries veces adicionales,
// solo ante domain.ErrStoreUnavailable. Cualquier otro error es terminal
// para el intento actual y se propaga de inmediato.
func withRetry(ctx context.Context, retries int, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrStoreUnavailable) {
			return err
		}
		if attempt >= retries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff):
		}
	}
}
