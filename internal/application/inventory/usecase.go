package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
	"github.com/jhoicas/MedStock-api/internal/domain/stock"
)

// SupplyUseCase casos de uso de insumos de una sede. Cada mutación pasa por el reconciliador
// y, al confirmarse, relee la colección completa de la sede en lugar de parchearla.
type SupplyUseCase struct {
	repo       repository.SupplyRepository
	txRunner   TxRunner
	reconciler stock.Reconciler
	scanField  string
	now        func() time.Time
}

// NewSupplyUseCase construye el caso de uso. scanField es el campo de coincidencia por defecto (upc | name).
func NewSupplyUseCase(repo repository.SupplyRepository, txRunner TxRunner, reconciler stock.Reconciler, scanField string) *SupplyUseCase {
	if scanField != entity.FieldName {
		scanField = entity.FieldUPC
	}
	return &SupplyUseCase{
		repo:       repo,
		txRunner:   txRunner,
		reconciler: reconciler,
		scanField:  scanField,
		now:        time.Now,
	}
}

// List devuelve los insumos filtrados (nombre + categoría) y ordenados, con los totales de toda la sede.
func (uc *SupplyUseCase) List(ctx context.Context, siteID, search, category string) (*dto.InventoryResponse, error) {
	if category != "" && category != entity.AllCategories && !entity.IsValidCategory(category) {
		return nil, fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, category)
	}
	all, err := uc.repo.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return uc.view(all, search, category), nil
}

// Summary totales de la sede.
func (uc *SupplyUseCase) Summary(ctx context.Context, siteID string) (*dto.InventorySummary, error) {
	all, err := uc.repo.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	sum := uc.summary(all)
	return &sum, nil
}

// Create valida y crea un insumo. Los errores de validación no llegan al almacén.
func (uc *SupplyUseCase) Create(ctx context.Context, siteID string, in dto.CreateSupplyRequest) (*dto.SupplyMutationResponse, error) {
	supply, err := uc.insert(ctx, siteID, in)
	if err != nil {
		return nil, err
	}
	return uc.mutationResult(ctx, siteID, supply), nil
}

// CreateOnly crea el insumo sin releer la colección de la sede (carga masiva).
func (uc *SupplyUseCase) CreateOnly(ctx context.Context, siteID string, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	supply, err := uc.insert(ctx, siteID, in)
	if err != nil {
		return nil, err
	}
	return toSupplyResponse(*supply), nil
}

func (uc *SupplyUseCase) insert(ctx context.Context, siteID string, in dto.CreateSupplyRequest) (*entity.Supply, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if !entity.IsValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: category inválida", domain.ErrInvalidInput)
	}
	if in.Stock == nil {
		return nil, fmt.Errorf("%w: stock es requerido", domain.ErrInvalidInput)
	}
	if *in.Stock < stock.Floor {
		return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := validateCost(in.UnitCost); err != nil {
		return nil, err
	}

	now := uc.now()
	supply := uc.reconciler.NewSupply(entity.Supply{
		SiteID:    siteID,
		Name:      name,
		Category:  in.Category,
		Stock:     *in.Stock,
		UPC:       strings.TrimSpace(in.UPC),
		UnitCost:  in.UnitCost,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err := uc.repo.Create(ctx, &supply); err != nil {
		return nil, err
	}
	return &supply, nil
}

// Update modifica metadatos (name, category, upc, unit_cost). El stock solo cambia con Adjust o Scan;
// la fila se lee bloqueada para no revertir un ajuste concurrente.
func (uc *SupplyUseCase) Update(ctx context.Context, siteID, id string, in dto.UpdateSupplyRequest) (*dto.SupplyMutationResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
	}
	if in.Category != nil && !entity.IsValidCategory(*in.Category) {
		return nil, fmt.Errorf("%w: category inválida", domain.ErrInvalidInput)
	}
	if err := validateCost(in.UnitCost); err != nil {
		return nil, err
	}

	var next entity.Supply
	err := uc.txRunner.Run(ctx, func(supplies repository.SupplyRepository) error {
		current, err := supplies.GetForUpdate(ctx, siteID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			current.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			current.Category = *in.Category
		}
		if in.UPC != nil {
			current.UPC = strings.TrimSpace(*in.UPC)
		}
		if in.UnitCost != nil {
			current.UnitCost = in.UnitCost
		}
		next = uc.reconciler.Reclassify(*current)
		next.UpdatedAt = uc.now()
		return supplies.Update(ctx, &next)
	})
	if err != nil {
		return nil, err
	}
	return uc.mutationResult(ctx, siteID, &next), nil
}

// Adjust aplica un delta manual (incremento/decremento) dentro de una transacción con la fila bloqueada.
func (uc *SupplyUseCase) Adjust(ctx context.Context, siteID, id string, delta int) (*dto.SupplyMutationResponse, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta no puede ser cero", domain.ErrInvalidInput)
	}
	var updated entity.Supply
	err := uc.txRunner.Run(ctx, func(supplies repository.SupplyRepository) error {
		current, err := supplies.GetForUpdate(ctx, siteID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		updated = uc.reconciler.ApplyDelta(*current, delta)
		updated.UpdatedAt = uc.now()
		return supplies.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return uc.mutationResult(ctx, siteID, &updated), nil
}

// Delete elimina un insumo de la sede.
func (uc *SupplyUseCase) Delete(ctx context.Context, siteID, id string) (*dto.SupplyMutationResponse, error) {
	if err := uc.repo.Delete(ctx, siteID, id); err != nil {
		return nil, err
	}
	return uc.mutationResult(ctx, siteID, nil), nil
}

// mutationResult relee la colección completa tras una escritura confirmada.
func (uc *SupplyUseCase) mutationResult(ctx context.Context, siteID string, s *entity.Supply) *dto.SupplyMutationResponse {
	out := &dto.SupplyMutationResponse{}
	if s != nil {
		out.Supply = toSupplyResponse(uc.reconciler.Reclassify(*s))
	}
	all, err := uc.repo.ListBySite(ctx, siteID)
	if err != nil {
		out.RefetchFailed = true
		return out
	}
	out.Inventory = uc.view(all, "", "")
	return out
}

func (uc *SupplyUseCase) view(all []*entity.Supply, search, category string) *dto.InventoryResponse {
	items := stock.SortForDisplay(stock.Filter(all, search, category))
	resp := &dto.InventoryResponse{
		Items:   make([]dto.SupplyResponse, 0, len(items)),
		Summary: uc.summary(all),
	}
	for _, s := range items {
		resp.Items = append(resp.Items, *toSupplyResponse(uc.reconciler.Reclassify(*s)))
	}
	return resp
}

func (uc *SupplyUseCase) summary(all []*entity.Supply) dto.InventorySummary {
	sum := uc.reconciler.Summarize(all)
	return dto.InventorySummary{
		Supplies:   sum.Supplies,
		TotalStock: sum.TotalStock,
		LowStock:   sum.LowStock,
		Threshold:  uc.reconciler.Threshold(),
	}
}

func validateCost(c *decimal.Decimal) error {
	if c != nil && c.IsNegative() {
		return fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func toSupplyResponse(s entity.Supply) *dto.SupplyResponse {
	return &dto.SupplyResponse{
		ID:        s.ID,
		SiteID:    s.SiteID,
		Name:      s.Name,
		Category:  s.Category,
		Stock:     s.Stock,
		LowStock:  s.LowStock,
		UPC:       s.UPC,
		UnitCost:  s.UnitCost,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
