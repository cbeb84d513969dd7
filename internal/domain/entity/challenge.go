package entity

import (
	"strings"
	"time"
)

// ChallengeKind es el tipo de código de presencia que muestra una ubicación.
type ChallengeKind string

const (
	KindColor   ChallengeKind = "color"
	KindNumeric ChallengeKind = "numeric"
	KindQR      ChallengeKind = "qr"
)

// ParseChallengeKind convierte un string a ChallengeKind.
func ParseChallengeKind(s string) (ChallengeKind, bool) {
	switch ChallengeKind(s) {
	case KindColor, KindNumeric, KindQR:
		return ChallengeKind(s), true
	}
	return "", false
}

// Rotating indica si el kind rota en el scheduler periódico.
// El QR se emite bajo demanda (un escaneo por evento de asistencia),
// no se re-muestra en pantalla cada periodo.
func (k ChallengeKind) Rotating() bool {
	return k == KindColor || k == KindNumeric
}

// Paleta fija para el kind color. Repetir color entre rotaciones
// consecutivas es válido (selección con reemplazo).
var ColorPalette = []string{"rojo", "verde", "azul", "amarillo"}

// Challenge es un código de corta vida ligado a una ubicación física:
// coincidirlo desde el móvil prueba presencia en esa ubicación.
type Challenge struct {
	ID         string
	LocationID string
	Kind       ChallengeKind
	Value      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	// Solo para QR: un código escaneado con éxito queda consumido y no
	// vuelve a validar. Color/numeric son códigos de difusión: muchos
	// empleados leen la misma pantalla, no hay consumo por empleado.
	ConsumedBy *string
	ConsumedAt *time.Time
}

// Active indica si el challenge está vigente en el instante dado.
func (c *Challenge) Active(now time.Time) bool {
	return !now.Before(c.IssuedAt) && now.Before(c.ExpiresAt)
}

// Consumed indica si un QR ya fue canjeado.
func (c *Challenge) Consumed() bool {
	return c.ConsumedBy != nil
}

// NormalizeValue normaliza un payload antes de comparar: trim + lower.
// La comparación es case-insensitive para los tres kinds: un empleado
// que teclea "Rojo" no debe fallar por la mayúscula.
func NormalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Matches compara el valor enviado contra el almacenado, normalizados.
func (c *Challenge) Matches(submitted string) bool {
	return NormalizeValue(c.Value) == NormalizeValue(submitted)
}
