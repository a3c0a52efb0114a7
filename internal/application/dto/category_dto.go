package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name  string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Icon  string `json:"icon" form:"icon" validate:"max=100"`
	Color string `json:"color" form:"color" validate:"omitempty,hexcolor"`
	Image string `json:"image" form:"image" validate:"omitempty,url"`
}

// UpdateCategoryRequest actualización parcial; solo se aplican los campos presentes.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Icon  *string `json:"icon" form:"icon" validate:"omitempty,max=100"`
	Color *string `json:"color" form:"color" validate:"omitempty,hexcolor"`
	Image *string `json:"image" form:"image" validate:"omitempty,url"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
