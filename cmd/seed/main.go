// seed prepara la base: aplica migraciones, crea o promueve el usuario admin
// y, opcionalmente, carga categorías de demostración.
//
// Uso: go run ./cmd/seed [--email admin@tienda.com] [--password ...] [--demo]
// Por defecto toma SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD del entorno.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/datastore"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

var demoCategories = []dto.CreateCategoryRequest{
	{Name: "Ropa", Icon: "shirt", Color: "#1f6feb"},
	{Name: "Hogar", Icon: "home", Color: "#2da44e"},
	{Name: "Tecnología", Icon: "laptop", Color: "#8250df"},
	{Name: "Juguetes", Icon: "puzzle", Color: "#bf8700"},
}

func main() {
	email := pflag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "email del admin")
	password := pflag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "password del admin (mín. 8 caracteres)")
	name := pflag.String("name", "Administrador", "nombre del admin")
	demo := pflag.Bool("demo", false, "crear categorías de demostración")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	cfg.DB.MigrateOnStart = true
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "seed"
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.DB.Driver == datastore.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: el seed no persistirá nada")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repos, err := datastore.Open(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.Close()

	if *email == "" || *password == "" {
		log.Warn().Msg("sin SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD: no se crea admin")
	} else {
		authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		admin, err := authUC.EnsureAdmin(ctx, *email, *password, *name)
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", admin.Email).Str("id", admin.ID).Msg("admin listo")
	}

	if *demo {
		if err := seedCategories(ctx, usecase.NewCategoryUseCase(repos.Categories, repos.Tx), log); err != nil {
			log.Fatal().Err(err).Msg("categorías demo")
		}
	}
	log.Info().Msg("seed terminado")
}

// seedCategories crea solo las categorías demo cuyo nombre no exista todavía.
func seedCategories(ctx context.Context, uc *usecase.CategoryUseCase, log *logger.Logger) error {
	existing, err := uc.List(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[c.Name] = true
	}
	for _, in := range demoCategories {
		if names[in.Name] {
			continue
		}
		c, err := uc.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("categoría %s: %w", in.Name, err)
		}
		log.Info().Str("id", c.ID).Str("name", c.Name).Msg("categoría creada")
	}
	return nil
}
