package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Las lecturas devuelven copias.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.categories[product.CategoryID]; !ok {
		return domain.ErrInvalidCategory
	}
	r.s.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *ProductRepo) GetWithCategory(_ context.Context, id string) (*entity.ProductWithCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(p), nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.categories[product.CategoryID]; !ok {
		return domain.ErrInvalidCategory
	}
	r.s.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *ProductRepo) ReplaceImages(_ context.Context, id string, images []string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Images = append([]string{}, images...)
	r.s.products[id] = p
	p = cloneProduct(p)
	return &p, nil
}

func (r *ProductRepo) List(_ context.Context, filter entity.ProductFilter) ([]*entity.ProductWithCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[string]bool, len(filter.CategoryIDs))
	for _, id := range filter.CategoryIDs {
		wanted[id] = true
	}
	list := make([]*entity.ProductWithCategory, 0, len(r.s.products))
	for _, p := range r.s.sortedProducts() {
		if len(wanted) > 0 && !wanted[p.CategoryID] {
			continue
		}
		list = append(list, r.withCategory(p))
	}
	return list, nil
}

func (r *ProductRepo) ListFeatured(_ context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.sortedProducts() {
		if !p.IsFeatured {
			continue
		}
		if limit > 0 && len(list) >= limit {
			break
		}
		p := cloneProduct(p)
		list = append(list, &p)
	}
	return list, nil
}

func (r *ProductRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.products)), nil
}

func (r *ProductRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// withCategory requiere el candado tomado.
func (r *ProductRepo) withCategory(p entity.Product) *entity.ProductWithCategory {
	out := &entity.ProductWithCategory{Product: cloneProduct(p)}
	if c, ok := r.s.categories[p.CategoryID]; ok {
		out.Category = &c
	}
	return out
}

// sortedProducts más recientes primero; requiere el candado tomado.
func (s *Store) sortedProducts() []entity.Product {
	list := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func cloneProduct(p entity.Product) entity.Product {
	p.Images = append([]string{}, p.Images...)
	return p
}
