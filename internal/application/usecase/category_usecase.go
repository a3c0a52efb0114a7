package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
// Política de borrado: se rechaza si algún producto la referencia (domain.ErrCategoryInUse).
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   repository.CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx repository.CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// Create crea una nueva categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Icon:      in.Icon,
		Color:     in.Color,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Update aplica los campos presentes en la petición.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = name
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.Image != nil {
		category.Image = *in.Image
	}
	category.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría si ningún producto la referencia.
// La verificación y el borrado van en la misma transacción.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInvalidID
	}
	return uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		category, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		n, err := products.CountByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("contar productos de la categoría: %w", err)
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
		return categories.Delete(ctx, id)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
