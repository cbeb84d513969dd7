package dto

import "time"

// ChallengeResponse representación del código activo para la pantalla de
// una ubicación. ConsumedBy/ConsumedAt solo aplican al kind qr.
type ChallengeResponse struct {
	ID         string     `json:"id"`
	LocationID string     `json:"location_id"`
	Kind       string     `json:"kind"`
	Value      string     `json:"value"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedBy *string    `json:"consumed_by,omitempty"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}

// CheckInRequest envío de un código desde el móvil del empleado.
type CheckInRequest struct {
	LocationID string `json:"location_id"`
	Kind       string `json:"kind"`  // color, numeric, qr
	Value      string `json:"value"` // color leído, dígitos o token del QR
}

// CheckInResponse registro de asistencia aceptado.
type CheckInResponse struct {
	AttendanceID string    `json:"attendance_id"`
	LocationID   string    `json:"location_id"`
	Kind         string    `json:"kind"`
	CheckedInAt  time.Time `json:"checked_in_at"`
}
