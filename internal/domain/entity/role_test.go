package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"super_admin", "hr_admin", "loc_manager", "employee"} {
		role, ok := entity.ParseRole(valid)
		assert.True(t, ok, "%s es un rol válido", valid)
		assert.Equal(t, entity.Role(valid), role)
	}

	for _, invalid := range []string{"", "admin", "SUPER_ADMIN", "gerente"} {
		_, ok := entity.ParseRole(invalid)
		assert.False(t, ok, "%q no debe parsear como rol", invalid)
	}
}

// Satisfies: super_admin satisface cualquier rol; el resto exige igualdad
// exacta; un rol inválido nunca satisface nada.
func TestRole_Satisfies(t *testing.T) {
	cases := []struct {
		role     entity.Role
		required entity.Role
		want     bool
	}{
		{entity.RoleSuperAdmin, entity.RoleEmployee, true},
		{entity.RoleSuperAdmin, entity.RoleHRAdmin, true},
		{entity.RoleSuperAdmin, entity.RoleSuperAdmin, true},
		{entity.RoleHRAdmin, entity.RoleHRAdmin, true},
		{entity.RoleEmployee, entity.RoleEmployee, true},
		{entity.RoleHRAdmin, entity.RoleEmployee, false},
		{entity.RoleLocManager, entity.RoleHRAdmin, false},
		{entity.RoleEmployee, entity.RoleSuperAdmin, false},
		{entity.Role("gerente"), entity.RoleEmployee, false},
		{entity.Role(""), entity.RoleEmployee, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.Satisfies(tc.required),
			"%s satisface %s", tc.role, tc.required)
	}
}
