package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductConfig límites del catálogo que antes eran globales.
type ProductConfig struct {
	FeaturedDefaultLimit int // se usa cuando count es 0, negativo o ausente
	FeaturedMaxLimit     int
	MaxGalleryFiles      int
}

// ProductUseCase casos de uso del catálogo de productos.
// Toda escritura verifica que la categoría exista dentro de la transacción.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tx         repository.CatalogTxRunner
	images     ports.ImageStorage
	cfg        ProductConfig
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	tx repository.CatalogTxRunner,
	images ports.ImageStorage,
	cfg ProductConfig,
) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, tx: tx, images: images, cfg: cfg}
}

// Create valida categoría e imagen, guarda el archivo y persiste el producto.
// imageBaseURL es el prefijo absoluto bajo el que se sirve el archivo (termina en "/").
// Si la inserción falla, el archivo ya escrito se borra.
func (uc *ProductUseCase) Create(
	ctx context.Context,
	in dto.CreateProductRequest,
	file *multipart.FileHeader,
	imageBaseURL string,
) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCategory(ctx, uc.categories, in.Category); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domain.ErrNoImage
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	filename, err := uc.images.Save(ctx, file)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     in.Description,
		RichDescription: in.RichDescription,
		Image:           imageBaseURL + filename,
		Images:          []string{},
		Brand:           in.Brand,
		Price:           price,
		CategoryID:      in.Category,
		CountInStock:    in.CountInStock,
		Rating:          in.Rating,
		NumReviews:      in.NumReviews,
		IsFeatured:      in.IsFeatured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		if err := uc.checkCategory(ctx, categories, product.CategoryID); err != nil {
			return err
		}
		return products.Create(ctx, product)
	})
	if err != nil {
		uc.discard(filename)
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// Update mezcla solo los campos presentes de la lista blanca.
// Sin imagen nueva se conserva la URL guardada tal cual.
func (uc *ProductUseCase) Update(
	ctx context.Context,
	id string,
	in dto.UpdateProductRequest,
	file *multipart.FileHeader,
	imageBaseURL string,
) (*dto.ProductResponse, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCategory(ctx, uc.categories, in.Category); err != nil {
		return nil, err
	}
	existing, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	var price *decimal.Decimal
	if in.Price != nil {
		p, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		price = &p
	}

	var newImage string
	if file != nil {
		filename, err := uc.images.Save(ctx, file)
		if err != nil {
			return nil, err
		}
		newImage = filename
	}

	var updated *entity.Product
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		if err := uc.checkCategory(ctx, categories, in.Category); err != nil {
			return err
		}
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		applyProductUpdate(product, in, price)
		if newImage != "" {
			product.Image = imageBaseURL + newImage
		}
		product.UpdatedAt = time.Now().UTC()
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		if newImage != "" {
			uc.discard(newImage)
		}
		return nil, err
	}
	return toProductResponse(updated, nil), nil
}

// List devuelve la proyección nombre/imagen con categoría poblada.
// categoryIDs vacío lista todo; cada id debe ser un UUID válido.
func (uc *ProductUseCase) List(ctx context.Context, categoryIDs []string) ([]dto.ProductSummaryResponse, error) {
	for _, id := range categoryIDs {
		if !validID(id) {
			return nil, domain.ErrInvalidID
		}
	}
	list, err := uc.products.List(ctx, entity.ProductFilter{CategoryIDs: categoryIDs})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductSummaryResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductSummaryResponse{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Category: toCategoryResponse(p.Category),
		})
	}
	return items, nil
}

// GetByID obtiene un producto con su categoría poblada.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	p, err := uc.products.GetWithCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(&p.Product, p.Category), nil
}

// Delete elimina el producto y, sin bloquear la respuesta por ello, sus archivos de imagen.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInvalidID
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	for _, url := range append([]string{product.Image}, product.Images...) {
		if url != "" {
			uc.discard(path.Base(url))
		}
	}
	return nil
}

// Count devuelve el total de productos.
func (uc *ProductUseCase) Count(ctx context.Context) (int64, error) {
	return uc.products.Count(ctx)
}

// Featured lista productos destacados. count <= 0 usa el límite por defecto
// y valores por encima del máximo se recortan.
func (uc *ProductUseCase) Featured(ctx context.Context, count int) ([]dto.ProductResponse, error) {
	limit := uc.FeaturedLimit(count)
	list, err := uc.products.ListFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return items, nil
}

// FeaturedLimit resuelve el límite efectivo del listado de destacados.
func (uc *ProductUseCase) FeaturedLimit(count int) int {
	switch {
	case count <= 0:
		return uc.cfg.FeaturedDefaultLimit
	case count > uc.cfg.FeaturedMaxLimit:
		return uc.cfg.FeaturedMaxLimit
	default:
		return count
	}
}

// UpdateGallery reemplaza la galería completa por las imágenes subidas, en el orden recibido.
// Los archivos de la galería anterior no se borran del disco.
func (uc *ProductUseCase) UpdateGallery(
	ctx context.Context,
	id string,
	files []*multipart.FileHeader,
	imageBaseURL string,
) (*dto.ProductResponse, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	if len(files) == 0 {
		return nil, domain.ErrNoImage
	}
	if len(files) > uc.cfg.MaxGalleryFiles {
		return nil, domain.ErrTooManyFiles
	}
	existing, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	saved := make([]string, 0, len(files))
	urls := make([]string, 0, len(files))
	for _, f := range files {
		filename, err := uc.images.Save(ctx, f)
		if err != nil {
			uc.discard(saved...)
			return nil, err
		}
		saved = append(saved, filename)
		urls = append(urls, imageBaseURL+filename)
	}

	product, err := uc.products.ReplaceImages(ctx, id, urls)
	if err != nil {
		uc.discard(saved...)
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// checkCategory verifica que categoryID sea un UUID de una categoría existente.
func (uc *ProductUseCase) checkCategory(ctx context.Context, categories repository.CategoryRepository, categoryID string) error {
	if !validID(categoryID) {
		return domain.ErrInvalidCategory
	}
	category, err := categories.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("verificar categoría: %w", err)
	}
	if category == nil {
		return domain.ErrInvalidCategory
	}
	return nil
}

// discard borra archivos subidos que quedaron huérfanos; solo registra los fallos.
func (uc *ProductUseCase) discard(filenames ...string) {
	for _, name := range filenames {
		if err := uc.images.Remove(name); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("no se pudo borrar la imagen")
		}
	}
}

func applyProductUpdate(p *entity.Product, in dto.UpdateProductRequest, price *decimal.Decimal) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.RichDescription != nil {
		p.RichDescription = *in.RichDescription
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if price != nil {
		p.Price = *price
	}
	p.CategoryID = in.Category
	if in.CountInStock != nil {
		p.CountInStock = *in.CountInStock
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.NumReviews != nil {
		p.NumReviews = *in.NumReviews
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
}

// parsePrice convierte el precio recibido como texto. Vacío = 0; negativo es inválido.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(s)
	if err != nil || price.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return price.Round(2), nil
}

func toProductResponse(p *entity.Product, category *entity.Category) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		RichDescription: p.RichDescription,
		Image:           p.Image,
		Images:          images,
		Brand:           p.Brand,
		Price:           p.Price,
		CategoryID:      p.CategoryID,
		Category:        toCategoryResponse(category),
		CountInStock:    p.CountInStock,
		Rating:          p.Rating,
		NumReviews:      p.NumReviews,
		IsFeatured:      p.IsFeatured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
