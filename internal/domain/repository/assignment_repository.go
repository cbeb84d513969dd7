package repository

import "context"

// AssignmentRepository es el puerto de solo lectura sobre las asignaciones
// identidad→ubicación (las escribe un colaborador externo de RRHH).
type AssignmentRepository interface {
	// EmployeeLocation devuelve la ubicación asignada al empleado,
	// o "" si no tiene asignación vigente ("" no es error).
	EmployeeLocation(ctx context.Context, identityID string) (string, error)
	// ManagerLocations devuelve las ubicaciones del encargado ordenadas por
	// fecha de asignación (la primera es la principal). Puede ser vacío.
	ManagerLocations(ctx context.Context, identityID string) ([]string, error)
}
