// Package storage guarda las imágenes subidas en un directorio público del disco.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/config"
)

var _ ports.ImageStorage = (*LocalStorage)(nil)

// LocalStorage implementa ports.ImageStorage sobre el sistema de archivos.
type LocalStorage struct {
	dir          string
	maxSize      int64
	allowedTypes map[string]string
	log          zerolog.Logger

	// now y last garantizan nombres únicos aunque dos archivos con el mismo
	// nombre lleguen en el mismo milisegundo.
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewLocalStorage crea el directorio de subidas si no existe.
func NewLocalStorage(cfg config.UploadConfig, log zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de subidas: %w", err)
	}
	allowed := cfg.AllowedTypes
	if len(allowed) == 0 {
		allowed = config.DefaultAllowedTypes()
	}
	return &LocalStorage{
		dir:          cfg.Dir,
		maxSize:      cfg.MaxFileSize,
		allowedTypes: allowed,
		log:          log,
		now:          time.Now,
	}, nil
}

// Save valida tipo y tamaño y copia el archivo al directorio público.
func (s *LocalStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", domain.ErrNoImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext, ok := s.allowedTypes[mimeType(file)]
	if !ok {
		return "", domain.ErrInvalidImageType
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", domain.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()

	name := BuildFilename(file.Filename, ext, s.tick())
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("crear archivo destino: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("cerrar imagen: %w", err)
	}

	s.log.Debug().Str("file", name).Int64("size", file.Size).Msg("imagen guardada")
	return name, nil
}

// Remove borra un archivo del directorio; filepath.Base evita salir de él.
func (s *LocalStorage) Remove(filename string) error {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}

// tick devuelve un instante estrictamente creciente en milisegundos.
func (s *LocalStorage) tick() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return time.UnixMilli(ms)
}

// mimeType tipo declarado por el cliente, sin parámetros (ej. "image/png; charset=x").
func mimeType(file *multipart.FileHeader) string {
	ct := file.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
