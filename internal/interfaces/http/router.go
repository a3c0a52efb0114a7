package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ExportUC   *usecase.CatalogExportUseCase
	Upload     config.UploadConfig
	JWTSecret  string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	adminOnly := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin)}
	admin := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, adminOnly...), h)
	}

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Categories: lectura pública, escritura solo admin
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", admin(categoryHandler.Create)...)
	categories.Put("/:id", admin(categoryHandler.Update)...)
	categories.Delete("/:id", admin(categoryHandler.Delete)...)

	// Products: las rutas fijas van antes de /:id
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Upload)
	exportHandler := NewExportHandler(deps.ExportUC)
	products.Get("/get/count", admin(productHandler.Count)...)
	products.Get("/get/featured/:count?", productHandler.Featured)
	products.Put("/gallery-image/:id", admin(productHandler.UpdateGallery)...)
	products.Get("/export/excel", admin(exportHandler.Excel)...)
	products.Get("/export/pdf", admin(exportHandler.PDF)...)

	products.Get("/", productHandler.List)
	products.Post("/", admin(productHandler.Create)...)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin(productHandler.Update)...)
	products.Delete("/:id", admin(productHandler.Delete)...)
}
