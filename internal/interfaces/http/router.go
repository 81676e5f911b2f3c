package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drxproject/plm-api/internal/application/auth"
	"github.com/drxproject/plm-api/internal/application/report"
	"github.com/drxproject/plm-api/internal/application/stage"
	"github.com/drxproject/plm-api/internal/application/usecase"
	"github.com/drxproject/plm-api/internal/domain/lifecycle"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	MaterialUC   *usecase.MaterialUseCase
	UserUC       *usecase.UserUseCase
	TransitionUC *stage.TransitionUseCase
	PortfolioUC  *report.PortfolioPDFUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products + ciclo de vida (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.TransitionUC, deps.PortfolioUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export/pdf", productHandler.ExportPDF)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(), productHandler.Delete)
	products.Post("/:id/advance", productHandler.Advance)
	products.Post("/:id/stage", productHandler.Override)
	products.Get("/:id/stage", productHandler.CurrentStage)
	products.Get("/:id/history", productHandler.History)

	// Materials (protegido; escritura restringida)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Get("/:number", materialHandler.GetByNumber)
	materials.Post("/", RequireRole(lifecycle.RoleDesigner), materialHandler.Create)
	materials.Put("/:number", RequireRole(lifecycle.RoleDesigner), materialHandler.Update)
	materials.Delete("/:number", RequireRole(), materialHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole())
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/roles", userHandler.ReplaceRoles)
	users.Delete("/:id", userHandler.Delete)
}
