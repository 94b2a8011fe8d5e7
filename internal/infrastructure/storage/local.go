// Package storage implementa el almacén local de archivos subidos (fotos de
// empleados, documentos, fotos de bitácora), particionado por sucursal.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/azex/pestops-api/internal/application/usecase"
)

var _ usecase.FileStore = (*LocalFileStore)(nil)

// LocalFileStore guarda archivos bajo <dir>/branch_<id>/ con nombre aleatorio
// (se conserva solo la extensión original). Los archivos se sirven estáticos
// bajo /uploads/.
type LocalFileStore struct {
	dir string
}

// NewLocalFileStore construye el almacén y asegura el directorio raíz.
func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalFileStore{dir: dir}, nil
}

// Save escribe data en la partición de la sucursal y devuelve el nombre almacenado.
func (s *LocalFileStore) Save(branchID, originalName string, data []byte) (string, error) {
	partition := filepath.Join(s.dir, "branch_"+sanitize(branchID))
	if err := os.MkdirAll(partition, 0o755); err != nil {
		return "", fmt.Errorf("crear partición de uploads: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(partition, name), data, 0o644); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return name, nil
}

// Remove borra un archivo almacenado de la partición de la sucursal.
func (s *LocalFileStore) Remove(branchID, storedName string) error {
	path := filepath.Join(s.dir, "branch_"+sanitize(branchID), sanitize(storedName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}

// URL devuelve la ruta pública del archivo almacenado.
func (s *LocalFileStore) URL(branchID, storedName string) string {
	return "/uploads/branch_" + sanitize(branchID) + "/" + storedName
}

// Dir devuelve la raíz del almacén (para montar el fileserver estático).
func (s *LocalFileStore) Dir() string {
	return s.dir
}

// sanitize elimina separadores de ruta del identificador.
func sanitize(id string) string {
	id = strings.ReplaceAll(id, "/", "")
	id = strings.ReplaceAll(id, "\\", "")
	return strings.ReplaceAll(id, "..", "")
}
