package scope

import (
	"context"
	"fmt"

	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/domain/repository"
)

// Scope es el conjunto de ubicaciones sobre el que una identidad puede
// generar/validar códigos. Unscoped (hr_admin, super_admin) significa
// "todas dentro del ámbito": quien lo consuma no debe intentar enumerar
// un conjunto finito para lógica de pantalla.
type Scope struct {
	Role      entity.Role
	Unscoped  bool
	CompanyID string   // ámbito de hr_admin; vacío para super_admin (global)
	Locations []string // ordenadas; la primera es la principal
}

// Primary ubicación principal para contextos de una sola ubicación.
func (s Scope) Primary() string {
	if len(s.Locations) == 0 {
		return ""
	}
	return s.Locations[0]
}

// Allows indica si la identidad puede actuar sobre la ubicación.
func (s Scope) Allows(locationID string) bool {
	if s.Unscoped {
		return true
	}
	for _, id := range s.Locations {
		if id == locationID {
			return true
		}
	}
	return false
}

// Empty indica un scope sin ubicaciones (empleado sin asignación).
// No es un error: las operaciones de códigos quedan inaplicables.
func (s Scope) Empty() bool {
	return !s.Unscoped && len(s.Locations) == 0
}

// Resolver calcula el scope de ubicaciones de una identidad según su rol.
// Lectura pura y determinista: el mismo (identidad, rol) sobre los mismos
// datos de asignación produce siempre el mismo conjunto.
type Resolver struct {
	assignments repository.AssignmentRepository
}

// NewResolver construye el resolver sobre el puerto de asignaciones.
func NewResolver(assignments repository.AssignmentRepository) *Resolver {
	return &Resolver{assignments: assignments}
}

// Resolve devuelve el scope:
//   - employee: la única ubicación de su asignación vigente (0 o 1)
//   - loc_manager: sus ubicaciones ordenadas por asignación (1ra = principal)
//   - hr_admin: sin enumeración, acotado a su company
//   - super_admin: sin enumeración, global
func (r *Resolver) Resolve(ctx context.Context, identityID string, role entity.Role, companyID string) (Scope, error) {
	if identityID == "" || !role.IsValid() {
		return Scope{}, domain.ErrInvalidInput
	}
	switch role {
	case entity.RoleEmployee:
		locID, err := r.assignments.EmployeeLocation(ctx, identityID)
		if err != nil {
			return Scope{}, fmt.Errorf("asignación de empleado: %w", err)
		}
		s := Scope{Role: role}
		if locID != "" {
			s.Locations = []string{locID}
		}
		return s, nil
	case entity.RoleLocManager:
		locs, err := r.assignments.ManagerLocations(ctx, identityID)
		if err != nil {
			return Scope{}, fmt.Errorf("asignaciones de encargado: %w", err)
		}
		return Scope{Role: role, Locations: locs}, nil
	case entity.RoleHRAdmin:
		return Scope{Role: role, Unscoped: true, CompanyID: companyID}, nil
	case entity.RoleSuperAdmin:
		return Scope{Role: role, Unscoped: true}, nil
	}
	return Scope{}, domain.ErrInvalidInput
}
