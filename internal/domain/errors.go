package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidID          = errors.New("id inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Catálogo
	ErrInvalidCategory = errors.New("categoría inválida")
	ErrCategoryInUse   = errors.New("la categoría tiene productos asociados")

	// Subida de imágenes
	ErrNoImage          = errors.New("no se adjuntó imagen")
	ErrInvalidImageType = errors.New("tipo de imagen inválido")
	ErrFileTooLarge     = errors.New("el archivo excede el tamaño permitido")
	ErrTooManyFiles     = errors.New("demasiados archivos")
)
