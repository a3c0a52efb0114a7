package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ExportHandler descarga del catálogo completo (solo admin).
type ExportHandler struct {
	uc *usecase.CatalogExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *usecase.CatalogExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Excel godoc
// @Summary      Exportar catálogo a Excel
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/products/export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportExcel(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, data, filename, mimeXLSX)
}

// PDF godoc
// @Summary      Exportar catálogo a PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/products/export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, data, filename, mimePDF)
}

func sendAttachment(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
