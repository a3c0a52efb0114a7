package ports

import (
	"context"
	"mime/multipart"
)

// ImageStorage define el puerto de salida para guardar imágenes subidas.
// Save valida el tipo MIME declarado y el tamaño antes de escribir y devuelve
// el nombre de archivo generado (sin ruta). Errores de validación: domain.ErrInvalidImageType,
// domain.ErrFileTooLarge.
type ImageStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	// Remove borra un archivo por nombre; no falla si ya no existe.
	Remove(filename string) error
}
