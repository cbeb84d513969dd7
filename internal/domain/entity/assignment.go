package entity

import "time"

// Assignment vincula una identidad con una ubicación. Para un empleado
// existe a lo sumo una vigente; un encargado puede tener varias (la
// primera asignada es la "principal" para contextos de una sola ubicación).
type Assignment struct {
	ID         string
	IdentityID string
	LocationID string
	AssignedAt time.Time
}
