package http

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	upload config.UploadConfig
}

// NewProductHandler construye el handler. upload define desde dónde se sirven las imágenes.
func NewProductHandler(uc *usecase.ProductUseCase, upload config.UploadConfig) *ProductHandler {
	return &ProductHandler{uc: uc, upload: upload}
}

// Create godoc
// @Summary      Crear producto
// @Description  Formulario multipart con los datos del producto y la imagen principal en "image".
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name             formData  string  true   "Nombre"
// @Param        description      formData  string  true   "Descripción"
// @Param        rich_description formData  string  false  "Descripción extendida"
// @Param        brand            formData  string  false  "Marca"
// @Param        price            formData  string  false  "Precio"
// @Param        category         formData  string  true   "ID de la categoría"
// @Param        count_in_stock   formData  int     true   "Stock (0-255)"
// @Param        rating           formData  number  false  "Rating (0-5)"
// @Param        num_reviews      formData  int     false  "Cantidad de reseñas"
// @Param        is_featured      formData  bool    false  "Destacado"
// @Param        image            formData  file    true   "Imagen principal (png, jpeg, jpg)"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in, formFile(c, "image"), h.imageBaseURL(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Solo se aplican los campos enviados. Sin "image" se conserva la imagen actual.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true   "ID del producto"
// @Param        category  formData  string  true   "ID de la categoría"
// @Param        name      formData  string  false  "Nombre"
// @Param        price     formData  string  false  "Precio"
// @Param        image     formData  file    false  "Nueva imagen principal"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, formFile(c, "image"), h.imageBaseURL(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Proyección nombre/imagen/categoría. Filtro opcional por categorías separadas por coma.
// @Tags         products
// @Produce      json
// @Param        categories  query  string  false  "IDs de categoría separados por coma"
// @Success      200  {array}   dto.ProductSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), splitIDs(c.Query("categories")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "el producto fue eliminado"})
}

// Count godoc
// @Summary      Cantidad de productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {string}  string  "Cantidad de productos: N"
// @Router       /api/v1/products/get/count [get]
func (h *ProductHandler) Count(c *fiber.Ctx) error {
	n, err := h.uc.Count(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fmt.Sprintf("Cantidad de productos: %d", n))
}

// Featured godoc
// @Summary      Productos destacados
// @Description  count ausente, 0 o negativo usa el límite por defecto; se recorta al máximo configurado.
// @Tags         products
// @Produce      json
// @Param        count  path  int  false  "Cantidad máxima"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/products/get/featured/{count} [get]
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	count := 0
	if raw := c.Params("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "INVALID_COUNT", "count debe ser un número entero")
		}
		count = n
	}
	out, err := h.uc.Featured(c.UserContext(), count)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateGallery godoc
// @Summary      Reemplazar galería de imágenes
// @Description  Reemplaza la galería completa por los archivos enviados en "images", en el orden recibido.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      string  true  "ID del producto"
// @Param        images  formData  file    true  "Imágenes (varias)"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/products/gallery-image/{id} [put]
func (h *ProductHandler) UpdateGallery(c *fiber.Ctx) error {
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["images"]
	}
	out, err := h.uc.UpdateGallery(c.UserContext(), c.Params("id"), files, h.imageBaseURL(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// imageBaseURL prefijo absoluto de las imágenes: PublicBaseURL o protocolo + host de la petición.
func (h *ProductHandler) imageBaseURL(c *fiber.Ctx) string {
	base := strings.TrimRight(h.upload.PublicBaseURL, "/")
	if base == "" {
		base = c.Protocol() + "://" + c.Hostname()
	}
	return base + "/" + strings.Trim(h.upload.PublicPath, "/") + "/"
}

// formFile devuelve el archivo del campo o nil si no vino.
func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

// splitIDs separa "a, b,,c" en [a b c].
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
