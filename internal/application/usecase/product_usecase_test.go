package usecase_test

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

const baseURL = "http://tienda.test/public/uploads/"

func newProductUC(store *memory.Store, images *fakeStorage) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(
		store.Products(), store.Categories(), store.TxRunner(), images,
		usecase.ProductConfig{FeaturedDefaultLimit: 10, FeaturedMaxLimit: 50, MaxGalleryFiles: 3},
	)
}

func createReq(categoryID string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: " Taza ", Description: "Cerámica", Price: "12999.999",
		Category: categoryID, CountInStock: 5, Brand: "Acme",
	}
}

func strPtr(s string) *string { return &s }

func TestProductUseCase_Create(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")

	out, err := uc.Create(context.Background(), createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)
	assert.Equal(t, "Taza", out.Name, "el nombre se recorta")
	assert.Equal(t, "13000", out.Price.String(), "el precio se redondea a 2 decimales")
	assert.Equal(t, baseURL+"taza-1.png", out.Image)
	assert.Empty(t, out.Images)
	assert.Equal(t, 1, images.live())
}

func TestProductUseCase_Create_Errores(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()

	_, err := uc.Create(ctx, createReq(uuid.NewString()), file("x"), baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = uc.Create(ctx, createReq("nada"), file("x"), baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = uc.Create(ctx, createReq(cat), nil, baseURL)
	assert.ErrorIs(t, err, domain.ErrNoImage)

	_, err = uc.Create(ctx, createReq(cat), file("bad.gif"), baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidImageType)

	in := createReq(cat)
	in.Price = "-1"
	_, err = uc.Create(ctx, in, file("x"), baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = createReq(cat)
	in.Name = "   "
	_, err = uc.Create(ctx, in, file("x"), baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre solo con espacios")

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, images.live(), "ningún archivo queda guardado")
}

func TestProductUseCase_Update_ConservaImagen(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	otra := seedCategory(t, store, "Cocina")
	ctx := context.Background()

	created, err := uc.Create(ctx, createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Category: otra,
		Price:    strPtr("15000"),
	}, nil, baseURL)
	require.NoError(t, err)
	assert.Equal(t, created.Image, out.Image)
	assert.Equal(t, otra, out.CategoryID)
	assert.Equal(t, "15000", out.Price.String())
	assert.Equal(t, created.Name, out.Name)
	assert.Equal(t, created.CreatedAt, out.CreatedAt, "la fecha de creación no cambia")
}

func TestProductUseCase_Update_ImagenNueva(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()

	created, err := uc.Create(ctx, createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Category: cat}, file("nueva"), baseURL)
	require.NoError(t, err)
	assert.Equal(t, baseURL+"nueva-2.png", out.Image)
}

func TestProductUseCase_Update_Errores(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()

	_, err := uc.Update(ctx, "x", dto.UpdateProductRequest{Category: cat}, nil, baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = uc.Update(ctx, uuid.NewString(), dto.UpdateProductRequest{Category: cat}, nil, baseURL)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := uc.Create(ctx, createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{}, nil, baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory, "la categoría es obligatoria al actualizar")

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Category: cat, Name: strPtr("  ")}, file("otra"), baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre solo con espacios")
	assert.Equal(t, 1, images.live(), "no se guarda la imagen nueva")
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taza", got.Name)
}

func TestProductUseCase_ListFiltra(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	a := seedCategory(t, store, "A")
	b := seedCategory(t, store, "B")
	ctx := context.Background()

	_, err := uc.Create(ctx, createReq(a), file("uno"), baseURL)
	require.NoError(t, err)
	_, err = uc.Create(ctx, createReq(b), file("dos"), baseURL)
	require.NoError(t, err)

	all, err := uc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := uc.List(ctx, []string{a})
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	require.NotNil(t, onlyA[0].Category)
	assert.Equal(t, "A", onlyA[0].Category.Name)

	_, err = uc.List(ctx, []string{"malo"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestProductUseCase_DeleteBorraArchivos(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()

	created, err := uc.Create(ctx, createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)
	_, err = uc.UpdateGallery(ctx, created.ID, []*multipart.FileHeader{file("g1"), file("g2")}, baseURL)
	require.NoError(t, err)
	require.Equal(t, 3, images.live())

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Zero(t, images.live())

	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "x"), domain.ErrInvalidID)
}

func TestProductUseCase_Gallery(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()

	created, err := uc.Create(ctx, createReq(cat), file("taza"), baseURL)
	require.NoError(t, err)

	out, err := uc.UpdateGallery(ctx, created.ID, []*multipart.FileHeader{file("g1"), file("g2")}, baseURL)
	require.NoError(t, err)
	assert.Equal(t, []string{baseURL + "g1-2.png", baseURL + "g2-3.png"}, out.Images)

	out, err = uc.UpdateGallery(ctx, created.ID, []*multipart.FileHeader{file("g3")}, baseURL)
	require.NoError(t, err)
	assert.Equal(t, []string{baseURL + "g3-4.png"}, out.Images, "la galería se reemplaza")
	assert.Equal(t, created.Image, out.Image)

	_, err = uc.UpdateGallery(ctx, created.ID, nil, baseURL)
	assert.ErrorIs(t, err, domain.ErrNoImage)

	_, err = uc.UpdateGallery(ctx, created.ID, []*multipart.FileHeader{file("a"), file("b"), file("c"), file("d")}, baseURL)
	assert.ErrorIs(t, err, domain.ErrTooManyFiles)

	_, err = uc.UpdateGallery(ctx, uuid.NewString(), []*multipart.FileHeader{file("a")}, baseURL)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	before := images.live()
	_, err = uc.UpdateGallery(ctx, created.ID, []*multipart.FileHeader{file("ok"), file("bad.gif")}, baseURL)
	assert.ErrorIs(t, err, domain.ErrInvalidImageType)
	assert.Equal(t, before, images.live(), "los archivos ya guardados en la petición fallida se borran")
}

func TestProductUseCase_Featured(t *testing.T) {
	store, images := memory.NewStore(), newFakeStorage()
	uc := newProductUC(store, images)
	cat := seedCategory(t, store, "Hogar")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := createReq(cat)
		in.IsFeatured = i < 2
		_, err := uc.Create(ctx, in, file("p"), baseURL)
		require.NoError(t, err)
	}

	list, err := uc.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, p := range list {
		assert.True(t, p.IsFeatured)
	}

	list, err = uc.Featured(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProductUseCase_FeaturedLimit(t *testing.T) {
	uc := newProductUC(memory.NewStore(), newFakeStorage())
	assert.Equal(t, 10, uc.FeaturedLimit(0))
	assert.Equal(t, 10, uc.FeaturedLimit(-5))
	assert.Equal(t, 7, uc.FeaturedLimit(7))
	assert.Equal(t, 50, uc.FeaturedLimit(500))
}
