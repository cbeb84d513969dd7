package dto

import "time"

// CreateLocationRequest alta de ubicación.
type CreateLocationRequest struct {
	Name string `json:"name"`
}

// LocationResponse representación pública de la ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScopeResponse ubicaciones sobre las que puede actuar la sesión.
type ScopeResponse struct {
	Role      string   `json:"role"`
	Unscoped  bool     `json:"unscoped"` // hr_admin/super_admin: sin enumeración finita
	Locations []string `json:"locations,omitempty"`
	Primary   string   `json:"primary,omitempty"`
}
