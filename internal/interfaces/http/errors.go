package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// Orden importa: se devuelve la primera coincidencia con errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrInvalidID, fiber.StatusBadRequest, "INVALID_ID", "id inválido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrInvalidCategory, fiber.StatusBadRequest, "INVALID_CATEGORY", "categoría inválida o inexistente"},
	{domain.ErrNoImage, fiber.StatusBadRequest, "NO_IMAGE", "no se adjuntó imagen"},
	{domain.ErrInvalidImageType, fiber.StatusBadRequest, "INVALID_IMAGE_TYPE", "tipo de imagen no permitido (png, jpeg, jpg)"},
	{domain.ErrFileTooLarge, fiber.StatusBadRequest, "FILE_TOO_LARGE", "el archivo excede el tamaño permitido"},
	{domain.ErrTooManyFiles, fiber.StatusBadRequest, "TOO_MANY_FILES", "demasiados archivos en la galería"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrCategoryInUse, fiber.StatusConflict, "CATEGORY_IN_USE", "la categoría tiene productos asociados"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "recurso duplicado"},
}

// writeError traduce un error de caso de uso a respuesta HTTP.
// Lo no mapeado se registra y se responde 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// validationError 400 VALIDATION con los campos que fallaron.
func validationError(c *fiber.Ctx, err error) error {
	return badRequest(c, "VALIDATION", dto.ValidationMessage(err))
}
