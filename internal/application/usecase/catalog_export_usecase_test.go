package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

type captureExporter struct {
	title string
	items []ports.CatalogItem
	err   error
}

func (c *captureExporter) GenerateCatalogPDF(_ context.Context, title string, items []ports.CatalogItem) ([]byte, error) {
	c.title, c.items = title, items
	return []byte("%PDF"), c.err
}

func (c *captureExporter) GenerateCatalogSheet(_ context.Context, items []ports.CatalogItem) ([]byte, error) {
	c.items = items
	return []byte("PK"), c.err
}

func TestCatalogExport(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	products := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()
	_, err := products.Create(ctx, createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)

	exp := &captureExporter{}
	uc := usecase.NewCatalogExportUseCase(store.Products(), exp, exp, "Catálogo Tienda")

	data, name, err := uc.ExportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Regexp(t, `^catalogo-\d{8}-\d{6}\.pdf$`, name)
	assert.Equal(t, "Catálogo Tienda", exp.title)
	require.Len(t, exp.items, 1)
	assert.Equal(t, "Hogar", exp.items[0].CategoryName)

	_, name, err = uc.ExportExcel(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `\.xlsx$`, name)
}

func TestCatalogExport_ErrorDelGenerador(t *testing.T) {
	store := memory.NewStore()
	exp := &captureExporter{err: errors.New("fallo")}
	uc := usecase.NewCatalogExportUseCase(store.Products(), exp, exp, "x")

	_, _, err := uc.ExportPDF(context.Background())
	assert.Error(t, err)
}
