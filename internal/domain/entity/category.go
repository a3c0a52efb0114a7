package entity

import "time"

// Category agrupa productos. Icon, Color e Image son metadatos opcionales de presentación.
type Category struct {
	ID        string
	Name      string
	Icon      string
	Color     string // hash de color, ej. "#ff8800"
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
