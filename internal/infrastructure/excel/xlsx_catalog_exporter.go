// Package excel exporta el catálogo como libro XLSX.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/jhoicas/tienda-api/internal/application/ports"
)

const sheetName = "Productos"

var headers = []string{
	"ID", "Nombre", "Categoría", "Marca", "Precio", "Stock",
	"Rating", "Reseñas", "Destacado", "Imagen", "Creado", "Actualizado",
}

var _ ports.CatalogSheetExporter = (*XLSXCatalogExporter)(nil)

// XLSXCatalogExporter implementa ports.CatalogSheetExporter con tealeg/xlsx.
type XLSXCatalogExporter struct{}

// NewXLSXCatalogExporter construye el exportador.
func NewXLSXCatalogExporter() *XLSXCatalogExporter { return &XLSXCatalogExporter{} }

// GenerateCatalogSheet arma una hoja con una fila por producto y devuelve el archivo.
func (e *XLSXCatalogExporter) GenerateCatalogSheet(ctx context.Context, items []ports.CatalogItem) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range headers {
		cell := header.AddCell()
		cell.SetString(h)
		cell.GetStyle().Font.Bold = true
	}

	for _, it := range items {
		p := it.Product
		price, _ := p.Price.Float64()

		r := sheet.AddRow()
		r.AddCell().SetString(p.ID)
		r.AddCell().SetString(p.Name)
		r.AddCell().SetString(it.CategoryName)
		r.AddCell().SetString(p.Brand)
		r.AddCell().SetFloatWithFormat(price, "#,##0.00")
		r.AddCell().SetInt(p.CountInStock)
		r.AddCell().SetFloat(p.Rating)
		r.AddCell().SetInt(p.NumReviews)
		r.AddCell().SetBool(p.IsFeatured)
		r.AddCell().SetString(p.Image)
		r.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		r.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
