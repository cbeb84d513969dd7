package challenge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// qrTokenBytes entropía del token QR (hex → 32 caracteres).
const qrTokenBytes = 16

// Generator produce exactamente un código fresco por (ubicación, kind) y
// lo persiste sustituyendo al anterior. Si la persistencia falla, el
// código previo sigue activo hasta su expiración natural y el rotator
// reintenta en el siguiente tick.
type Generator struct {
	repo repository.ChallengeRepository
	cfg  Config
	now  func() time.Time
}

// NewGenerator construye el generador de códigos.
func NewGenerator(repo repository.ChallengeRepository, cfg Config) *Generator {
	return &Generator{repo: repo, cfg: cfg.normalized(), now: time.Now}
}

// WithNow inyecta el reloj (tests). Devuelve el mismo generador.
func (g *Generator) WithNow(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate emite un nuevo challenge para (locationID, kind) y lo persiste
// expirando el activo previo. Reintenta de forma acotada ante fallo
// transitorio del almacén.
func (g *Generator) Generate(ctx context.Context, locationID string, kind entity.ChallengeKind) (*entity.Challenge, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	value, err := g.newValue(kind)
	if err != nil {
		return nil, fmt.Errorf("generar valor %s: %w", kind, err)
	}

	issuedAt := g.now()
	c := &entity.Challenge{
		ID:         uuid.New().String(),
		LocationID: locationID,
		Kind:       kind,
		Value:      value,
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt.Add(g.ttl(kind)),
	}

	err = withRetry(ctx, g.cfg.StoreRetries, func() error {
		return g.repo.Supersede(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("persistir challenge: %w", err)
	}
	return c, nil
}

// ttl ventana de validez según el kind.
func (g *Generator) ttl(kind entity.ChallengeKind) time.Duration {
	if kind == entity.KindQR {
		return g.cfg.QRTTL
	}
	return g.cfg.RotationPeriod
}

// newValue dibuja el payload según el kind:
//   - color: uniforme sobre la paleta fija, con reemplazo (repetir entre
//     rotaciones consecutivas es válido, no un error)
//   - numeric: dígitos aleatorios de largo fijo (crypto/rand)
//   - qr: token opaco imposible de adivinar, con prefijo para depuración
func (g *Generator) newValue(kind entity.ChallengeKind) (string, error) {
	switch kind {
	case entity.KindColor:
		i, err := randomIndex(len(entity.ColorPalette))
		if err != nil {
			return "", err
		}
		return entity.ColorPalette[i], nil
	case entity.KindNumeric:
		return randomDigits(g.cfg.NumericLength)
	case entity.KindQR:
		b := make([]byte, qrTokenBytes)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		return "qr-" + hex.EncodeToString(b), nil
	}
	return "", domain.ErrInvalidInput
}

// randomDigits devuelve n dígitos aleatorios como string.
func randomDigits(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := make([]byte, n)
	for i := 0; i < n; i++ {
		s[i] = '0' + (b[i] % 10)
	}
	return string(s), nil
}

// randomIndex devuelve un índice uniforme en [0, n) evitando el sesgo de
// módulo (n=4 divide 256, pero no dependemos de eso).
func randomIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("paleta vacía")
	}
	max := 256 - (256 % n)
	var b [1]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return 0, err
		}
		if int(b[0]) < max {
			return int(b[0]) % n, nil
		}
	}
}
