// Package datastore elige la implementación de persistencia según DB_DRIVER.
package datastore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// Drivers soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Repositories puertos de persistencia ya construidos.
type Repositories struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Users      repository.UserRepository
	Tx         repository.CatalogTxRunner

	close func()
}

// Close libera el pool de conexiones, si lo hay.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta con el driver configurado. Con postgres aplica las migraciones
// pendientes si MigrateOnStart está activo.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case DriverMemory:
		log.Warn().Msg("usando almacén en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Repositories{
			Products:   store.Products(),
			Categories: store.Categories(),
			Users:      store.Users(),
			Tx:         store.TxRunner(),
		}, nil

	case DriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &Repositories{
			Products:   postgres.NewProductRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Users:      postgres.NewUserRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}
