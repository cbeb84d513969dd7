package entity

// Role es el rol de un usuario dentro del sistema de asistencia.
// Tipo propio (no string suelto) para que la autorización pase siempre
// por Satisfies y no por comparaciones ad hoc repartidas por el código.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleHRAdmin    Role = "hr_admin"
	RoleLocManager Role = "loc_manager"
	RoleEmployee   Role = "employee"
)

// ParseRole convierte un string a Role. Devuelve ok=false para valores
// desconocidos: un rol agregado "en silencio" nunca pasa autorización.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleHRAdmin, RoleLocManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// IsValid indica si el rol es uno de los conocidos.
func (r Role) IsValid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Satisfies decide si este rol cumple el rol requerido:
// super_admin satisface cualquier requerimiento; el resto exige igualdad
// exacta. Roles inválidos nunca satisfacen nada (falla cerrado).
func (r Role) Satisfies(required Role) bool {
	if !r.IsValid() || !required.IsValid() {
		return false
	}
	if r == RoleSuperAdmin {
		return true
	}
	return r == required
}

func (r Role) String() string { return string(r) }
