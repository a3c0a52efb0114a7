package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo.
// CategoryID debe apuntar a una Category existente (se verifica al escribir y por FK).
type Product struct {
	ID              string
	Name            string
	Description     string
	RichDescription string
	Image           string   // URL absoluta de la imagen principal
	Images          []string // galería ordenada de URLs
	Brand           string
	Price           decimal.Decimal
	CategoryID      string
	CountInStock    int
	Rating          float64
	NumReviews      int
	IsFeatured      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductWithCategory producto con su categoría poblada (equivalente a populate).
// Category es nil si la referencia quedó colgando.
type ProductWithCategory struct {
	Product
	Category *Category
}

// ProductFilter criterios de listado. CategoryIDs vacío = sin filtro.
type ProductFilter struct {
	CategoryIDs []string
}
