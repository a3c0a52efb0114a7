package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CatalogExportUseCase exporta el catálogo completo (solo admin) a PDF o XLSX.
type CatalogExportUseCase struct {
	products repository.ProductRepository
	pdf      ports.CatalogPDFGenerator
	sheet    ports.CatalogSheetExporter
	title    string
}

// NewCatalogExportUseCase construye el caso de uso. title encabeza el PDF.
func NewCatalogExportUseCase(
	products repository.ProductRepository,
	pdf ports.CatalogPDFGenerator,
	sheet ports.CatalogSheetExporter,
	title string,
) *CatalogExportUseCase {
	return &CatalogExportUseCase{products: products, pdf: pdf, sheet: sheet, title: title}
}

// ExportPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *CatalogExportUseCase) ExportPDF(ctx context.Context) ([]byte, string, error) {
	items, err := uc.items(ctx)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateCatalogPDF(ctx, uc.title, items)
	if err != nil {
		return nil, "", fmt.Errorf("exportar catálogo pdf: %w", err)
	}
	return doc, exportFilename("pdf"), nil
}

// ExportExcel devuelve los bytes del XLSX y el nombre de archivo sugerido.
func (uc *CatalogExportUseCase) ExportExcel(ctx context.Context) ([]byte, string, error) {
	items, err := uc.items(ctx)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.sheet.GenerateCatalogSheet(ctx, items)
	if err != nil {
		return nil, "", fmt.Errorf("exportar catálogo xlsx: %w", err)
	}
	return doc, exportFilename("xlsx"), nil
}

func (uc *CatalogExportUseCase) items(ctx context.Context) ([]ports.CatalogItem, error) {
	list, err := uc.products.List(ctx, entity.ProductFilter{})
	if err != nil {
		return nil, err
	}
	items := make([]ports.CatalogItem, 0, len(list))
	for _, p := range list {
		item := ports.CatalogItem{Product: p.Product}
		if p.Category != nil {
			item.CategoryName = p.Category.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func exportFilename(ext string) string {
	return fmt.Sprintf("catalogo-%s.%s", time.Now().UTC().Format("20060102-150405"), ext)
}
