// @title           Tienda API
// @version         1.0
// @description     API de la tienda: catálogo de productos y categorías, subida de imágenes y rutas de administración.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/tienda-api/docs"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/datastore"
	infraexcel "github.com/jhoicas/tienda-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const devJWTSecret = "dev-only-secret-change-me"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, usando secreto de desarrollo")
		cfg.JWT.Secret = devJWTSecret
	}

	ctx := context.Background()
	repos, err := datastore.Open(ctx, cfg.DB, log.Component("datastore").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.Close()

	images, err := storage.NewLocalStorage(cfg.Upload, log.Component("storage").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de subidas")
	}

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(repos.Users)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories, repos.Tx)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Tx, images, usecase.ProductConfig{
		FeaturedDefaultLimit: cfg.Catalog.FeaturedDefaultLimit,
		FeaturedMaxLimit:     cfg.Catalog.FeaturedMaxLimit,
		MaxGalleryFiles:      cfg.Upload.MaxGalleryFiles,
	})

	// Exportación del catálogo: PDF (maroto) y XLSX (tealeg/xlsx)
	exportUC := usecase.NewCatalogExportUseCase(
		repos.Products,
		infrapdf.NewMarotoPDFGenerator(),
		infraexcel.NewXLSXCatalogExporter(),
		"Catálogo "+cfg.App.Name,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.BodyLimit(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	// Imágenes subidas
	app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		ExportUC:   exportUC,
		Upload:     cfg.Upload,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
