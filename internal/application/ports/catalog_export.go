package ports

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CatalogItem fila del catálogo exportado: producto más el nombre de su categoría.
type CatalogItem struct {
	Product      entity.Product
	CategoryName string
}

// CatalogPDFGenerator genera el listado del catálogo en PDF.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, title string, items []CatalogItem) ([]byte, error)
}

// CatalogSheetExporter genera el catálogo como libro XLSX.
type CatalogSheetExporter interface {
	GenerateCatalogSheet(ctx context.Context, items []CatalogItem) ([]byte, error)
}
