package challenge

import "time"

// Config parámetros del subsistema de códigos de presencia.
type Config struct {
	// RotationPeriod periodo de rotación de color/numeric (20s: lo bastante
	// corto para que un código filtrado por foto sirva de poco).
	RotationPeriod time.Duration
	// NumericLength largo del código numérico. No es una garantía
	// criptográfica: solo hace impráctico adivinar dentro de una rotación.
	NumericLength int
	// QRTTL ventana del QR de un solo uso (se escanea una vez por evento de
	// asistencia, no se re-muestra, así que dura más que una rotación).
	QRTTL time.Duration
	// StoreRetries reintentos acotados ante fallo transitorio del almacén.
	StoreRetries int
}

// DefaultConfig valores de operación por defecto.
func DefaultConfig() Config {
	return Config{
		RotationPeriod: 20 * time.Second,
		NumericLength:  4,
		QRTTL:          5 * time.Minute,
		StoreRetries:   2,
	}
}

// normalized rellena los campos en cero con los defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.RotationPeriod <= 0 {
		c.RotationPeriod = d.RotationPeriod
	}
	if c.NumericLength <= 0 {
		c.NumericLength = d.NumericLength
	}
	if c.QRTTL <= 0 {
		c.QRTTL = d.QRTTL
	}
	if c.StoreRetries < 0 {
		c.StoreRetries = d.StoreRetries
	}
	return c
}
