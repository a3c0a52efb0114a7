package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando no hay registro.
// Update, ReplaceImages y Delete devuelven domain.ErrNotFound si el id no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetWithCategory(ctx context.Context, id string) (*entity.ProductWithCategory, error)
	Update(ctx context.Context, product *entity.Product) error
	ReplaceImages(ctx context.Context, id string, images []string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.ProductWithCategory, error)
	ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
