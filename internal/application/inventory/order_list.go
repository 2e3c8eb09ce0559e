package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
	"github.com/jhoicas/MedStock-api/internal/domain/stock"
)

// OrderListUseCase genera la lista de pedido de una sede: insumos en stock bajo, en el mismo
// orden que la lista principal, con cantidad sugerida y costo estimado.
type OrderListUseCase struct {
	repo       repository.SupplyRepository
	sites      *entity.SiteSet
	reconciler stock.Reconciler
	now        func() time.Time
}

// NewOrderListUseCase construye el caso de uso.
func NewOrderListUseCase(repo repository.SupplyRepository, sites *entity.SiteSet, reconciler stock.Reconciler) *OrderListUseCase {
	return &OrderListUseCase{repo: repo, sites: sites, reconciler: reconciler, now: time.Now}
}

// Generate devuelve la lista de pedido de la sede.
func (uc *OrderListUseCase) Generate(ctx context.Context, siteID string) (*dto.OrderListResponse, error) {
	site, ok := uc.sites.Get(siteID)
	if !ok {
		return nil, domain.ErrUnknownSite
	}
	all, err := uc.repo.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	lines := uc.reconciler.OrderList(all)
	resp := &dto.OrderListResponse{
		SiteID:             site.ID,
		SiteName:           site.Name,
		Threshold:          uc.reconciler.Threshold(),
		GeneratedAt:        uc.now(),
		Lines:              make([]dto.OrderLineResponse, 0, len(lines)),
		TotalEstimatedCost: stock.TotalEstimatedCost(lines),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			SupplyID:      l.Supply.ID,
			Name:          l.Supply.Name,
			Category:      l.Supply.Category,
			Stock:         l.Supply.Stock,
			UPC:           l.Supply.UPC,
			SuggestedQty:  l.SuggestedQty,
			UnitCost:      l.Supply.UnitCost,
			EstimatedCost: l.EstimatedCost,
		})
	}
	return resp, nil
}
