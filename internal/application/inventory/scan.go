package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
	"github.com/jhoicas/MedStock-api/internal/domain/stock"
)

// Scan resuelve un escaneo: query_equals por el campo de coincidencia, bloqueo del primer
// resultado y reconciliación (+1 entrada, -1 salida recortada en cero).
// Sin coincidencia devuelve outcome not_found con un borrador; no es un error.
func (uc *SupplyUseCase) Scan(ctx context.Context, siteID string, in dto.ScanRequest) (*dto.ScanResponse, error) {
	key := strings.TrimSpace(in.Key)
	if key == "" {
		return nil, fmt.Errorf("%w: key es requerido", domain.ErrInvalidInput)
	}
	mode, ok := stock.ParseScanMode(in.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: mode debe ser in u out", domain.ErrInvalidInput)
	}
	field := uc.scanField
	switch in.Field {
	case "":
	case entity.FieldName, entity.FieldUPC:
		field = in.Field
	default:
		return nil, fmt.Errorf("%w: field debe ser name o upc", domain.ErrInvalidInput)
	}

	var result stock.ScanResult
	err := uc.txRunner.Run(ctx, func(supplies repository.SupplyRepository) error {
		matches, err := supplies.FindByField(ctx, siteID, field, key)
		if err != nil {
			return err
		}
		var candidates []*entity.Supply
		if len(matches) > 0 {
			locked, err := supplies.GetForUpdate(ctx, siteID, matches[0].ID)
			if err != nil {
				return err
			}
			if locked != nil {
				candidates = append(candidates, locked)
			}
		}
		result = uc.reconciler.ResolveScan(key, field, mode, candidates)
		if result.Outcome != stock.OutcomeUpdated {
			return nil
		}
		result.Supply.UpdatedAt = uc.now()
		return supplies.Update(ctx, result.Supply)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ScanResponse{
		Outcome: string(result.Outcome),
		Mode:    string(mode),
		Field:   field,
	}
	if result.Outcome == stock.OutcomeNotFound {
		resp.Draft = &dto.SupplyDraft{
			Name:     result.Draft.Name,
			UPC:      result.Draft.UPC,
			Stock:    result.Draft.Stock,
			LowStock: result.Draft.LowStock,
		}
		return resp, nil
	}

	prev := result.PreviousStock
	resp.PreviousStock = &prev
	mut := uc.mutationResult(ctx, siteID, result.Supply)
	resp.Supply = mut.Supply
	resp.Inventory = mut.Inventory
	return resp, nil
}
