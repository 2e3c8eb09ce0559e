package export

import (
	"context"
	"errors"
	"fmt"
)

// ErrPDFGeneratorNotConfigured se devuelve si no se inyectó el generador PDF.
var ErrPDFGeneratorNotConfigured = errors.New("export: generador PDF no configurado")

// OrderListExportUseCase genera las representaciones exportables de la lista de pedido.
type OrderListExportUseCase struct {
	source       OrderListSource
	generator    OrderListPDFGenerator
	linesPerPage int
}

// NewOrderListExportUseCase construye el caso de uso; linesPerPage < 1 usa DefaultLinesPerPage.
func NewOrderListExportUseCase(source OrderListSource, generator OrderListPDFGenerator, linesPerPage int) *OrderListExportUseCase {
	if linesPerPage < 1 {
		linesPerPage = DefaultLinesPerPage
	}
	return &OrderListExportUseCase{source: source, generator: generator, linesPerPage: linesPerPage}
}

// LinesPerPage presupuesto de líneas vigente.
func (uc *OrderListExportUseCase) LinesPerPage() int { return uc.linesPerPage }

// PDF devuelve la lista de pedido de la sede como documento PDF paginado.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrUnknownSite      si la sede no está en el conjunto permitido.
func (uc *OrderListExportUseCase) PDF(ctx context.Context, siteID string) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", ErrPDFGeneratorNotConfigured
	}
	list, err := uc.source.Generate(ctx, siteID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateOrderListPDF(ctx, list, Paginate(list.Lines, uc.linesPerPage))
	if err != nil {
		return nil, "", fmt.Errorf("export: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("lista-pedido-%s-%s.pdf", list.SiteID, list.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}

// Text devuelve la versión imprimible en texto plano.
func (uc *OrderListExportUseCase) Text(ctx context.Context, siteID string) (string, error) {
	list, err := uc.source.Generate(ctx, siteID)
	if err != nil {
		return "", err
	}
	return OrderListText(list, uc.linesPerPage), nil
}
