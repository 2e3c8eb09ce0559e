package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/MedStock-api/docs"
	"github.com/jhoicas/MedStock-api/internal/application/auth"
	"github.com/jhoicas/MedStock-api/internal/application/export"
	"github.com/jhoicas/MedStock-api/internal/application/inventory"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
	"github.com/jhoicas/MedStock-api/internal/domain/stock"
	"github.com/jhoicas/MedStock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/MedStock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/MedStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/MedStock-api/internal/interfaces/http"
	"github.com/jhoicas/MedStock-api/pkg/config"
	"github.com/jhoicas/MedStock-api/pkg/logger"
)

// @title        MedStock API
// @version      1.0
// @description  Inventario de insumos para sedes de atención urgente.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("store", cfg.Store.Driver).
		Int("low_stock_threshold", cfg.Inventory.LowStockThreshold).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer closeStores()

	sites := siteSet(cfg.Inventory.Sites)
	reconciler := stock.NewReconciler(cfg.Inventory.LowStockThreshold)

	supplyUC := inventory.NewSupplyUseCase(stores.supplies, stores.txRunner, reconciler, cfg.Inventory.ScanField)
	orderListUC := inventory.NewOrderListUseCase(stores.supplies, sites, reconciler)

	// PDF: lista de pedido paginada
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	exportUC := export.NewOrderListExportUseCase(orderListUC, pdfGenerator, cfg.Export.LinesPerPage)

	authUC := auth.NewAuthUseCase(stores.users, sites, auth.NewDenylist(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.HTTP.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "MedStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		SupplyUC:     supplyUC,
		OrderListUC:  orderListUC,
		ExportUC:     exportUC,
		Sites:        sites,
		LoginLimiter: httpRouter.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		Logger:       log,
		JWTSecret:    cfg.JWT.Secret,
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

// stores repositorios y runner transaccional del driver elegido.
type stores struct {
	supplies repository.SupplyRepository
	txRunner inventory.TxRunner
	users    repository.UserRepository
}

// openStores abre PostgreSQL (con migraciones opcionales) o el almacén en memoria según STORE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (stores, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		supplies := memory.NewSupplyStore()
		return stores{supplies: supplies, txRunner: supplies, users: memory.NewUserStore()}, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return stores{}, nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return stores{}, nil, err
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migración aplicada")
		}
	}
	return stores{
		supplies: postgres.NewSupplyRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		users:    postgres.NewUserRepository(pool),
	}, pool.Close, nil
}

func siteSet(entries []config.SiteEntry) *entity.SiteSet {
	sites := make([]entity.Site, 0, len(entries))
	for _, e := range entries {
		sites = append(sites, entity.Site{ID: e.ID, Name: e.Name})
	}
	return entity.NewSiteSet(sites...)
}

func corsOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}
