package entity

import "time"

// Attendance es el evento de asistencia que se registra cuando un código
// de presencia valida con éxito. El validador no escribe esta fila; lo
// hace el caso de uso de check-in que lo invoca.
type Attendance struct {
	ID          string
	IdentityID  string
	LocationID  string
	Kind        ChallengeKind
	CheckedInAt time.Time
}
