package export

import (
	"context"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
)

// OrderListSource produce la lista de pedido de una sede (implementado por inventory.OrderListUseCase).
type OrderListSource interface {
	Generate(ctx context.Context, siteID string) (*dto.OrderListResponse, error)
}

// OrderListPDFGenerator define el contrato para renderizar la lista de pedido en PDF.
// pages ya viene paginado; cada elemento es una página con su propio encabezado.
type OrderListPDFGenerator interface {
	GenerateOrderListPDF(ctx context.Context, list *dto.OrderListResponse, pages [][]dto.OrderLineResponse) ([]byte, error)
}
