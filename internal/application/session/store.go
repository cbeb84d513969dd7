package session

import "sync"

// Store es el slot clave/valor del dispositivo donde vive la sesión
// serializada (una sola entrada, la "session" del equipo). Se inyecta
// para poder sustituir el almacenamiento real por uno en memoria en
// tests, en lugar de un singleton global.
type Store interface {
	// Get devuelve el registro serializado y si existe. (nil, false, nil)
	// cuando el slot está vacío.
	Get() ([]byte, bool, error)
	Put(data []byte) error
	// Delete vacía el slot. Idempotente.
	Delete() error
}

// MemoryStore implementación en memoria del Store (tests y procesos
// efímeros). Una sesión pertenece a un solo dispositivo, así que el
// mutex solo protege contra usos concurrentes dentro del proceso.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, false, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, true, nil
}

func (s *MemoryStore) Put(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.set = true
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.set = false
	return nil
}
