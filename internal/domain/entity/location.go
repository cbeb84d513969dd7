package entity

import "time"

// Location es una ubicación física (sede, bodega, punto de venta) cuya
// pantalla muestra los códigos de presencia.
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
