package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

func newCategory(t *testing.T, s *Store, id, name string) {
	t.Helper()
	require.NoError(t, s.Categories().Create(context.Background(), &entity.Category{ID: id, Name: name}))
}

func newProduct(id, categoryID string, created time.Time, featured bool) *entity.Product {
	return &entity.Product{
		ID: id, Name: "p-" + id, CategoryID: categoryID,
		Price: decimal.NewFromInt(10), Images: []string{"a"},
		IsFeatured: featured, CreatedAt: created, UpdatedAt: created,
	}
}

func TestProductRepo_ClaveForanea(t *testing.T) {
	s := NewStore()
	err := s.Products().Create(context.Background(), newProduct("p1", "no-existe", time.Now(), false))
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestProductRepo_CopiasIndependientes(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	newCategory(t, s, "c1", "Ropa")
	p := newProduct("p1", "c1", time.Now(), false)
	require.NoError(t, s.Products().Create(ctx, p))

	p.Images[0] = "mutado"
	got, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Images, "modificar el original no altera lo guardado")
}

func TestProductRepo_ListYFeatured(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	newCategory(t, s, "c1", "Ropa")
	newCategory(t, s, "c2", "Hogar")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Products().Create(ctx, newProduct("viejo", "c1", base, true)))
	require.NoError(t, s.Products().Create(ctx, newProduct("nuevo", "c2", base.Add(time.Hour), true)))
	require.NoError(t, s.Products().Create(ctx, newProduct("normal", "c1", base.Add(2*time.Hour), false)))

	all, err := s.Products().List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "normal", all[0].ID, "más recientes primero")
	require.NotNil(t, all[0].Category)
	assert.Equal(t, "Ropa", all[0].Category.Name)

	filtered, err := s.Products().List(ctx, entity.ProductFilter{CategoryIDs: []string{"c2"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "nuevo", filtered[0].ID)

	featured, err := s.Products().ListFeatured(ctx, 1)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "nuevo", featured[0].ID)

	n, err := s.Products().CountByCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestProductRepo_ReplaceImagesYDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	newCategory(t, s, "c1", "Ropa")
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "c1", time.Now(), false)))

	p, err := s.Products().ReplaceImages(ctx, "p1", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, p.Images)

	_, err = s.Products().ReplaceImages(ctx, "otro", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Products().Delete(ctx, "p1"))
	assert.ErrorIs(t, s.Products().Delete(ctx, "p1"), domain.ErrNotFound)
}

func TestCategoryRepo_DeleteRestrict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	newCategory(t, s, "c1", "Ropa")
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "c1", time.Now(), false)))

	assert.ErrorIs(t, s.Categories().Delete(ctx, "c1"), domain.ErrCategoryInUse)
	require.NoError(t, s.Products().Delete(ctx, "p1"))
	assert.NoError(t, s.Categories().Delete(ctx, "c1"))
	assert.ErrorIs(t, s.Categories().Delete(ctx, "c1"), domain.ErrNotFound)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "a@b.com"}))
	err := s.Users().Create(ctx, &entity.User{ID: "u2", Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.TxRunner().Run(ctx, func(repository.ProductRepository, repository.CategoryRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
