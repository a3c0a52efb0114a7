package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest campos de formulario (multipart) para crear un producto.
// La imagen llega aparte en el campo "image". Price viaja como texto y se parsea a decimal.
type CreateProductRequest struct {
	Name            string  `json:"name" form:"name" validate:"required,min=1,max=200"`
	Description     string  `json:"description" form:"description" validate:"required,max=2000"`
	RichDescription string  `json:"rich_description" form:"rich_description" validate:"max=20000"`
	Brand           string  `json:"brand" form:"brand" validate:"max=100"`
	Price           string  `json:"price" form:"price" validate:"omitempty,numeric"`
	Category        string  `json:"category" form:"category"`
	CountInStock    int     `json:"count_in_stock" form:"count_in_stock" validate:"min=0,max=255"`
	Rating          float64 `json:"rating" form:"rating" validate:"min=0,max=5"`
	NumReviews      int     `json:"num_reviews" form:"num_reviews" validate:"min=0"`
	IsFeatured      bool    `json:"is_featured" form:"is_featured"`
}

// UpdateProductRequest actualización con lista blanca de campos: solo se mezclan los presentes.
// Category es obligatorio y debe existir. id, image, images y fechas no se pueden pisar.
type UpdateProductRequest struct {
	Name            *string  `json:"name" form:"name" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	RichDescription *string  `json:"rich_description" form:"rich_description" validate:"omitempty,max=20000"`
	Brand           *string  `json:"brand" form:"brand" validate:"omitempty,max=100"`
	Price           *string  `json:"price" form:"price" validate:"omitempty,numeric"`
	Category        string   `json:"category" form:"category"`
	CountInStock    *int     `json:"count_in_stock" form:"count_in_stock" validate:"omitempty,min=0,max=255"`
	Rating          *float64 `json:"rating" form:"rating" validate:"omitempty,min=0,max=5"`
	NumReviews      *int     `json:"num_reviews" form:"num_reviews" validate:"omitempty,min=0"`
	IsFeatured      *bool    `json:"is_featured" form:"is_featured"`
}

// ProductResponse salida completa de un producto. Category va poblada en GET /products/:id.
type ProductResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	RichDescription string            `json:"rich_description"`
	Image           string            `json:"image"`
	Images          []string          `json:"images"`
	Brand           string            `json:"brand"`
	Price           decimal.Decimal   `json:"price"`
	CategoryID      string            `json:"category_id"`
	Category        *CategoryResponse `json:"category,omitempty"`
	CountInStock    int               `json:"count_in_stock"`
	Rating          float64           `json:"rating"`
	NumReviews      int               `json:"num_reviews"`
	IsFeatured      bool              `json:"is_featured"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ProductSummaryResponse proyección del listado: nombre, imagen y categoría poblada.
type ProductSummaryResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Image    string            `json:"image"`
	Category *CategoryResponse `json:"category"`
}
