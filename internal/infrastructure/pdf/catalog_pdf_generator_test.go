package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestGenerateCatalogPDF(t *testing.T) {
	items := []ports.CatalogItem{
		{
			Product: entity.Product{
				Name: "Camiseta", Brand: "Acme", CountInStock: 12,
				Price: decimal.RequireFromString("45000"), IsFeatured: true,
			},
			CategoryName: "Ropa",
		},
		{
			Product:      entity.Product{Name: "Taza", CountInStock: 3, Price: decimal.RequireFromString("9900.5")},
			CategoryName: "",
		},
	}

	out, err := NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), "Catálogo", items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateCatalogPDF_SinProductos(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), "Catálogo", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateCatalogPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoPDFGenerator().GenerateCatalogPDF(ctx, "Catálogo", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"999":       "999,00",
		"25000.5":   "25.000,50",
		"1234567.8": "1.234.567,80",
		"-1500":     "-1.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPrice(decimal.RequireFromString(in)), "entrada %s", in)
	}
}
