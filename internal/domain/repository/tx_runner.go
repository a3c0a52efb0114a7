package repository

import "context"

// CatalogTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Se usa para verificar la referencia producto→categoría y escribir de forma atómica.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(products ProductRepository, categories CategoryRepository) error) error
}
