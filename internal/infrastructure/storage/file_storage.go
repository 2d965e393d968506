// Package storage guarda los archivos subidos por los proveedores en un sistema de
// archivos afero. En producción es un BasePathFs sobre UPLOAD_DIR; en tests, MemMapFs.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/spf13/afero"
)

// FileStorage almacén de payloads con claves relativas "vendorID/uuid-nombre.ext".
type FileStorage struct {
	fs afero.Fs
}

// NewFileStorage construye el almacén sobre fs.
func NewFileStorage(fs afero.Fs) *FileStorage {
	return &FileStorage{fs: fs}
}

// NewOSFileStorage crea (si falta) el directorio raíz y lo encierra en un BasePathFs.
func NewOSFileStorage(root string) (*FileStorage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return NewFileStorage(afero.NewBasePathFs(osFs, root)), nil
}

// Save escribe r bajo una clave nueva y la devuelve. Dos subidas con el mismo nombre
// nunca colisionan.
func (s *FileStorage) Save(_ context.Context, vendorID, filename string, r io.Reader) (string, error) {
	key := path.Join(safeSegment(vendorID), objectName(filename))
	if err := s.fs.MkdirAll(fsPath(path.Dir(key)), 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta del proveedor: %w", err)
	}
	if err := afero.WriteReader(s.fs, fsPath(key), r); err != nil {
		_ = s.fs.Remove(fsPath(key))
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return key, nil
}

// Delete elimina el payload; una clave inexistente no es error.
func (s *FileStorage) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(fsPath(key))
	if err != nil {
		if exists, _ := afero.Exists(s.fs, fsPath(key)); !exists {
			return nil
		}
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// Open abre el payload para lectura.
func (s *FileStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := s.fs.Open(fsPath(key))
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	return f, nil
}

// HTTPFileSystem expone el almacén como http.FileSystem para servir /uploads.
func (s *FileStorage) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir("/")
}

// fsPath ancla la clave en la raíz del fs: MemMapFs distingue "a/b" de "/a/b".
func fsPath(key string) string {
	return path.Join("/", key)
}

// objectName "uuid-nombre-en-slug.ext"; la extensión se conserva en minúsculas.
func objectName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "file"
	}
	if len(name) > 80 {
		name = name[:80]
	}
	if ext = slug.Make(strings.TrimPrefix(ext, ".")); ext != "" {
		name += "." + ext
	}
	return uuid.New().String() + "-" + name
}

// safeSegment impide que un id con "/" o ".." salga de la carpeta del proveedor.
func safeSegment(s string) string {
	if seg := slug.Make(s); seg != "" {
		return seg
	}
	return "unknown"
}
