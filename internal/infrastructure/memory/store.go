// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory para correr la API sin PostgreSQL y como doble en los tests.
// Reproduce las restricciones del esquema SQL: FK producto→categoría con RESTRICT y email único.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Store guarda las tablas en mapas protegidos por un único RWMutex.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	categories map[string]entity.Category
	products   map[string]entity.Product
	users      map[string]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		users:      make(map[string]entity.User),
	}
}

// Products devuelve el repositorio de productos sobre este almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Categories devuelve el repositorio de categorías sobre este almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Users devuelve el repositorio de usuarios sobre este almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// TxRunner devuelve el runner de transacciones del almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

var _ repository.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones del catálogo. No hay rollback:
// los callbacks del caso de uso validan antes de escribir, así que una escritura es siempre la última operación.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con los repositorios del almacén mientras retiene el candado de transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(products repository.ProductRepository, categories repository.CategoryRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(r.s.Products(), r.s.Categories())
}
