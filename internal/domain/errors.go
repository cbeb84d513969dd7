package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Taxonomía de validación de códigos de presencia.
	ErrChallengeNotFound = errors.New("no hay código activo para la ubicación")
	ErrChallengeExpired  = errors.New("el código expiró")
	ErrCodeMismatch      = errors.New("el código enviado no coincide")
	ErrAlreadyConsumed   = errors.New("el código QR ya fue consumido")

	// Sesión de dispositivo.
	ErrNoSession      = errors.New("no hay sesión en el dispositivo")
	ErrSessionExpired = errors.New("la sesión expiró")

	// Fallo transitorio del almacén: se reintenta de forma acotada en
	// generador/validador antes de propagarse. Nunca debe reportarse al
	// usuario como código incorrecto.
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
)
