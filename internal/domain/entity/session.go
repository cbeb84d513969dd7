package entity

import "time"

// SessionTTL vida fija de la sesión de dispositivo (renovable).
const SessionTTL = 7 * 24 * time.Hour

// Session es la aserción de identidad/rol que guarda el dispositivo.
// No es un token criptográfico: asume que el medio de almacenamiento es
// privado del dispositivo. El backend sigue autorizando por su cuenta;
// la sesión solo acota lo que el cliente intenta.
type Session struct {
	IdentityID  string    `json:"identity_id"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	CompanyID   string    `json:"company_id,omitempty"`
	BranchID    string    `json:"branch_id,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired indica si la sesión ya pasó su ventana de validez.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
