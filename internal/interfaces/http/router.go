package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MedStock-api/internal/application/auth"
	"github.com/jhoicas/MedStock-api/internal/application/export"
	"github.com/jhoicas/MedStock-api/internal/application/inventory"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	SupplyUC     *inventory.SupplyUseCase
	OrderListUC  *inventory.OrderListUseCase
	ExportUC     *export.OrderListExportUseCase
	Sites        *entity.SiteSet
	LoginLimiter *IPRateLimiter
	Logger       *logger.Logger
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Rutas protegidas: Bearer Token de una sede habilitada. Se monta por ruta y en /supplies, nunca sobre /api.
	authed := []fiber.Handler{AuthMiddleware(deps.JWTSecret, deps.AuthUC), RequireSite(deps.Sites)}

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Middleware(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/logout", withHandler(authed, authHandler.Logout)...)
	authGroup.Get("/me", withHandler(authed, authHandler.Me)...)

	// Datos de referencia (público: la pantalla de login necesita las sedes)
	catalogHandler := NewCatalogHandler(deps.AuthUC)
	api.Get("/sites", catalogHandler.Sites)
	api.Get("/categories", catalogHandler.Categories)

	// Supplies (protegido)
	supplies := api.Group("/supplies", authed...)
	supplyHandler := NewSupplyHandler(deps.SupplyUC, deps.OrderListUC, deps.ExportUC, log)
	supplies.Get("/", supplyHandler.List)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/summary", supplyHandler.Summary)
	supplies.Get("/order-list", supplyHandler.OrderList)
	supplies.Get("/order-list/pdf", supplyHandler.OrderListPDF)
	supplies.Get("/order-list/print", supplyHandler.OrderListPrint)
	supplies.Post("/scan", supplyHandler.Scan)
	supplies.Put("/:id", supplyHandler.Update)
	supplies.Patch("/:id/stock", supplyHandler.AdjustStock)
	supplies.Delete("/:id", RequireRole(entity.RoleAdmin), supplyHandler.Delete)
}

func withHandler(middleware []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(middleware)+1)
	out = append(out, middleware...)
	return append(out, h)
}
