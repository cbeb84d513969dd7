package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// Manager mantiene la aserción de identidad/rol del dispositivo sin
// reconsultar al backend en cada lectura. Es un mecanismo de confianza
// en el cliente, no un token firmado: asume que el Store es privado del
// equipo. El backend autoriza por su cuenta cada mutación.
type Manager struct {
	store Store
	now   func() time.Time
}

// NewManager construye el manager sobre el store inyectado.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// WithNow inyecta el reloj (tests). Devuelve el mismo manager.
func (m *Manager) WithNow(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create emite y persiste una sesión nueva con vida fija de 7 días.
func (m *Manager) Create(identityID, displayName string, role entity.Role, companyID, branchID string) (*entity.Session, error) {
	if identityID == "" || !role.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	now := m.now()
	s := &entity.Session{
		IdentityID:  identityID,
		DisplayName: displayName,
		Role:        role,
		CompanyID:   companyID,
		BranchID:    branchID,
		IssuedAt:    now,
		ExpiresAt:   now.Add(entity.SessionTTL),
	}
	if err := m.save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Read devuelve la sesión vigente o nil si no hay. La expiración es
// perezosa: no hay tarea de limpieza en segundo plano; una sesión vencida
// se borra aquí, en el momento de leerla, y se devuelve nil.
func (m *Manager) Read() (*entity.Session, error) {
	data, ok, err := m.store.Get()
	if err != nil {
		return nil, fmt.Errorf("leer slot de sesión: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Registro corrupto: se descarta como si no existiera.
		_ = m.store.Delete()
		return nil, nil
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(); err != nil {
			return nil, fmt.Errorf("borrar sesión vencida: %w", err)
		}
		return nil, nil
	}
	return &s, nil
}

// Renew extiende la sesión 7 días más preservando identidad y rol.
// Falla con ErrNoSession si no hay sesión vigente.
func (m *Manager) Renew() (*entity.Session, error) {
	s, err := m.Read()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNoSession
	}
	s.ExpiresAt = m.now().Add(entity.SessionTTL)
	if err := m.save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy borra la sesión incondicionalmente. Idempotente.
func (m *Manager) Destroy() error {
	return m.store.Delete()
}

// Authorize decide si la sesión vigente cumple el rol requerido.
// Falla cerrado: sin sesión (o con error de lectura) devuelve false.
func (m *Manager) Authorize(required entity.Role) bool {
	s, err := m.Read()
	if err != nil || s == nil {
		return false
	}
	return s.Role.Satisfies(required)
}

func (m *Manager) save(s *entity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := m.store.Put(data); err != nil {
		return fmt.Errorf("persistir sesión: %w", err)
	}
	return nil
}
