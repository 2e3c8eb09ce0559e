package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

const supplyColumns = `id, site_id, name, category, stock, low_stock, COALESCE(upc, ''), unit_cost, created_at, updated_at`

// SupplyRepo implementación del puerto SupplyRepository sobre PostgreSQL (usable con pool o tx).
// La tabla supplies con columna site_id cumple el papel de la colección sites/{site}/supplies.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create inserta el insumo; el ID lo genera la base de datos.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (site_id, name, category, stock, low_stock, upc, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.SiteID, s.Name, s.Category, s.Stock, s.LowStock, s.UPC, nullDecimal(s.UnitCost), s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, constraintName(err))
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo de la sede; nil, nil si no existe.
func (r *SupplyRepo) GetByID(ctx context.Context, siteID, id string) (*entity.Supply, error) {
	return r.getOne(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE site_id = $1 AND id = $2`, siteID, id)
}

// GetForUpdate obtiene el insumo bloqueando la fila (SELECT FOR UPDATE). Requiere transacción.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, siteID, id string) (*entity.Supply, error) {
	return r.getOne(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE site_id = $1 AND id = $2 FOR UPDATE`, siteID, id)
}

func (r *SupplyRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Supply, error) {
	s, err := scanSupply(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return s, nil
}

// ListBySite lista todos los insumos de la sede.
func (r *SupplyRepo) ListBySite(ctx context.Context, siteID string) ([]*entity.Supply, error) {
	return r.list(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE site_id = $1 ORDER BY created_at`, siteID)
}

// FindByField consulta por igualdad. field se valida contra la lista blanca antes de componer el SQL.
func (r *SupplyRepo) FindByField(ctx context.Context, siteID, field, value string) ([]*entity.Supply, error) {
	if !entity.IsQueryableField(field) {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT %s FROM supplies WHERE site_id = $1 AND %s = $2 ORDER BY created_at`, supplyColumns, field)
	return r.list(ctx, query, siteID, value)
}

func (r *SupplyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Supply, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update escribe stock y low_stock en la misma sentencia junto con los metadatos.
func (r *SupplyRepo) Update(ctx context.Context, s *entity.Supply) error {
	query := `
		UPDATE supplies
		SET name = $3, category = $4, stock = $5, low_stock = $6, upc = NULLIF($7, ''), unit_cost = $8, updated_at = $9
		WHERE site_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		s.SiteID, s.ID, s.Name, s.Category, s.Stock, s.LowStock, s.UPC, nullDecimal(s.UnitCost), s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, constraintName(err))
		}
		return fmt.Errorf("update supply: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un insumo de la sede.
func (r *SupplyRepo) Delete(ctx context.Context, siteID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM supplies WHERE site_id = $1 AND id = $2`, siteID, id)
	if err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	var cost decimal.NullDecimal
	if err := row.Scan(&s.ID, &s.SiteID, &s.Name, &s.Category, &s.Stock, &s.LowStock, &s.UPC, &cost,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if cost.Valid {
		c := cost.Decimal
		s.UnitCost = &c
	}
	return &s, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
