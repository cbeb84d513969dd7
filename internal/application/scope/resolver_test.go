package scope_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/asistencia-pro/internal/application/scope"
	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

const (
	identidad = "00000000-0000-0000-0000-0000000000a1"
	empresa   = "00000000-0000-0000-0000-0000000000a2"
)

// fakeAssignments asignaciones fijas en memoria.
type fakeAssignments struct {
	employee map[string]string   // identityID → locationID
	manager  map[string][]string // identityID → ubicaciones ordenadas
	err      error
}

func (f *fakeAssignments) EmployeeLocation(_ context.Context, identityID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.employee[identityID], nil
}

func (f *fakeAssignments) ManagerLocations(_ context.Context, identityID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.manager[identityID], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Resolver — scope por rol
// ──────────────────────────────────────────────────────────────────────────────

// Un empleado resuelve a exactamente su ubicación asignada.
func TestResolver_EmpleadoConAsignacion(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{employee: map[string]string{identidad: "loc-1"}})

	sc, err := r.Resolve(context.Background(), identidad, entity.RoleEmployee, empresa)
	require.NoError(t, err)

	assert.False(t, sc.Unscoped)
	assert.Equal(t, []string{"loc-1"}, sc.Locations)
	assert.Equal(t, "loc-1", sc.Primary())
	assert.True(t, sc.Allows("loc-1"))
	assert.False(t, sc.Allows("loc-2"))
}

// Empleado sin asignación vigente: scope vacío, no error.
func TestResolver_EmpleadoSinAsignacion_ScopeVacio(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{})

	sc, err := r.Resolve(context.Background(), identidad, entity.RoleEmployee, empresa)
	require.NoError(t, err)

	assert.True(t, sc.Empty())
	assert.Equal(t, "", sc.Primary())
	assert.False(t, sc.Allows("loc-1"), "sin asignación ninguna ubicación está permitida")
}

// Un encargado resuelve a sus ubicaciones en orden de asignación; la
// primera es la principal.
func TestResolver_EncargadoUbicacionesOrdenadas(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{
		manager: map[string][]string{identidad: {"loc-2", "loc-1", "loc-3"}},
	})

	sc, err := r.Resolve(context.Background(), identidad, entity.RoleLocManager, empresa)
	require.NoError(t, err)

	assert.Equal(t, []string{"loc-2", "loc-1", "loc-3"}, sc.Locations)
	assert.Equal(t, "loc-2", sc.Primary())
	assert.True(t, sc.Allows("loc-3"))
	assert.False(t, sc.Allows("loc-9"))
}

// hr_admin no enumera: scope sin límite dentro de su empresa.
func TestResolver_HRAdminSinEnumeracion(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{})

	sc, err := r.Resolve(context.Background(), identidad, entity.RoleHRAdmin, empresa)
	require.NoError(t, err)

	assert.True(t, sc.Unscoped)
	assert.Equal(t, empresa, sc.CompanyID)
	assert.Empty(t, sc.Locations)
	assert.True(t, sc.Allows("cualquier-ubicacion"))
	assert.False(t, sc.Empty())
}

// super_admin es global: sin enumeración y sin empresa.
func TestResolver_SuperAdminGlobal(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{})

	sc, err := r.Resolve(context.Background(), identidad, entity.RoleSuperAdmin, empresa)
	require.NoError(t, err)

	assert.True(t, sc.Unscoped)
	assert.Equal(t, "", sc.CompanyID)
	assert.True(t, sc.Allows("cualquier-ubicacion"))
}

// La resolución es determinista: mismas asignaciones, mismo scope.
func TestResolver_Determinista(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{
		manager: map[string][]string{identidad: {"loc-1", "loc-2"}},
	})
	ctx := context.Background()

	first, err := r.Resolve(ctx, identidad, entity.RoleLocManager, empresa)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(ctx, identidad, entity.RoleLocManager, empresa)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolver_RolDesconocidoEsInvalido(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{})
	_, err := r.Resolve(context.Background(), identidad, entity.Role("gerente"), empresa)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolver_IdentidadVaciaEsInvalida(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{})
	_, err := r.Resolve(context.Background(), "", entity.RoleEmployee, empresa)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El error del puerto de asignaciones se propaga envuelto.
func TestResolver_ErrorDelPuertoSePropaga(t *testing.T) {
	r := scope.NewResolver(&fakeAssignments{
		err: fmt.Errorf("select asignaciones: %w", domain.ErrStoreUnavailable),
	})
	_, err := r.Resolve(context.Background(), identidad, entity.RoleEmployee, empresa)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
