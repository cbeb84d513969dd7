// Package localstore implementa el slot de sesión del dispositivo sobre un
// archivo local (el equivalente del almacenamiento privado del equipo en
// el kiosco de pantalla).
package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tu-usuario/asistencia-pro/internal/application/session"
)

var _ session.Store = (*FileStore)(nil)

// FileStore guarda la sesión serializada en un archivo con permisos 0600.
// Asume que el archivo es privado del dispositivo; no cifra ni firma.
type FileStore struct {
	path string
}

// NewFileStore construye el store sobre la ruta dada (se crea el
// directorio padre si no existe).
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("localstore: ruta vacía")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("crear directorio de sesión: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Get devuelve el contenido del slot y si existe.
func (s *FileStore) Get() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer sesión: %w", err)
	}
	return data, true, nil
}

// Put escribe el slot de forma atómica (archivo temporal + rename).
func (s *FileStore) Put(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("escribir sesión: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("reemplazar sesión: %w", err)
	}
	return nil
}

// Delete vacía el slot. Idempotente: borrar lo inexistente no es error.
func (s *FileStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
