// seed_supplies carga el inventario inicial de una sede desde un CSV.
//
// Uso: go run ./cmd/seed_supplies <site_id> [ruta/insumos.csv] [charset]
// Columnas: name,category,stock,upc,unit_cost (upc y unit_cost opcionales; encabezado opcional).
// charset: utf-8 (por defecto), windows-1252 o iso-8859-1 para exportaciones de hojas de cálculo.
// Cada fila pasa por el mismo caso de uso que la API: validación y stock bajo calculado.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/MedStock-api/internal/application/inventory"
	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/stock"
	"github.com/jhoicas/MedStock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MedStock-api/pkg/config"
	"github.com/jhoicas/MedStock-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_supplies <site_id> [insumos.csv] [charset]")
		os.Exit(2)
	}
	siteID := os.Args[1]
	csvPath := "insumos.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	charset := ""
	if len(os.Args) > 3 {
		charset = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	known := false
	for _, s := range cfg.Inventory.Sites {
		known = known || s.ID == siteID
	}
	if !known {
		log.Fatal().Str("site_id", siteID).Msg("sede no incluida en INVENTORY_SITES")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := ParseSupplies(f, charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	uc := inventory.NewSupplyUseCase(
		postgres.NewSupplyRepository(pool),
		postgres.NewTxRunner(pool),
		stock.NewReconciler(cfg.Inventory.LowStockThreshold),
		entity.FieldUPC,
	)

	created, skipped := 0, 0
	for _, row := range rows {
		_, err := uc.CreateOnly(ctx, siteID, row.Request)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrInvalidInput):
			skipped++
			log.Warn().Err(err).Int("line", row.Line).Str("name", row.Request.Name).Msg("fila omitida")
		default:
			log.Fatal().Err(err).Int("line", row.Line).Msg("crear insumo")
		}
	}

	log.Info().Str("site_id", siteID).Int("created", created).Int("skipped", skipped).Msg("carga finalizada")
}
