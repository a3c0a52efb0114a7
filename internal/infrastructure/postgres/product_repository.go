package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, rich_description, image, images, brand, price, category_id,
	count_in_stock, rating, num_reviews, is_featured, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Una categoría inexistente viola la FK y se reporta como ErrInvalidCategory.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.Name, p.Description, p.RichDescription, p.Image, nonNil(p.Images), p.Brand, p.Price, p.CategoryID,
		p.CountInStock, p.Rating, p.NumReviews, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrInvalidCategory
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetWithCategory obtiene un producto con su categoría poblada.
func (r *ProductRepo) GetWithCategory(ctx context.Context, id string) (*entity.ProductWithCategory, error) {
	rows, err := r.q.Query(ctx, productWithCategoryQuery+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get product with category: %w", err)
	}
	list, err := collectProductsWithCategory(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Update escribe los campos editables; images se cambia solo vía ReplaceImages.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, description = $3, rich_description = $4, image = $5, brand = $6,
			price = $7, category_id = $8, count_in_stock = $9, rating = $10, num_reviews = $11,
			is_featured = $12, updated_at = $13
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.RichDescription, p.Image, p.Brand,
		p.Price, p.CategoryID, p.CountInStock, p.Rating, p.NumReviews,
		p.IsFeatured, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidCategory
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceImages sustituye la galería completa y devuelve el producto actualizado.
func (r *ProductRepo) ReplaceImages(ctx context.Context, id string, images []string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET images = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+productColumns,
		id, nonNil(images), time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("replace product images: %w", err)
	}
	return p, nil
}

// List lista productos (más recientes primero) con su categoría, filtrando opcionalmente por categorías.
func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.ProductWithCategory, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(productWithCategoryQuery)
	if len(filter.CategoryIDs) > 0 {
		sb.WriteString(` WHERE p.category_id = ANY($1::uuid[])`)
		args = append(args, filter.CategoryIDs)
	}
	sb.WriteString(` ORDER BY p.created_at DESC, p.id`)

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProductsWithCategory(rows)
}

// ListFeatured lista productos destacados, más recientes primero.
func (r *ProductRepo) ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_featured
		ORDER BY created_at DESC, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count devuelve el total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountByCategory cuenta los productos que referencian una categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const productWithCategoryQuery = `
	SELECT p.id, p.name, p.description, p.rich_description, p.image, p.images, p.brand, p.price, p.category_id,
		p.count_in_stock, p.rating, p.num_reviews, p.is_featured, p.created_at, p.updated_at,
		c.id, c.name, c.icon, c.color, c.image, c.created_at, c.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.RichDescription, &p.Image, &p.Images, &p.Brand, &p.Price, &p.CategoryID,
		&p.CountInStock, &p.Rating, &p.NumReviews, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProductsWithCategory(rows pgx.Rows) ([]*entity.ProductWithCategory, error) {
	defer rows.Close()
	var list []*entity.ProductWithCategory
	for rows.Next() {
		var (
			p                      entity.ProductWithCategory
			cID, cName, cIcon      *string
			cColor, cImage         *string
			cCreatedAt, cUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.RichDescription, &p.Image, &p.Images, &p.Brand, &p.Price, &p.CategoryID,
			&p.CountInStock, &p.Rating, &p.NumReviews, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
			&cID, &cName, &cIcon, &cColor, &cImage, &cCreatedAt, &cUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product with category: %w", err)
		}
		// LEFT JOIN: sin fila de categoría todas las columnas llegan NULL.
		if cID != nil {
			p.Category = &entity.Category{
				ID:        *cID,
				Name:      deref(cName),
				Icon:      deref(cIcon),
				Color:     deref(cColor),
				Image:     deref(cImage),
				CreatedAt: derefTime(cCreatedAt),
				UpdatedAt: derefTime(cUpdatedAt),
			}
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
