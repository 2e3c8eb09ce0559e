package export_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/application/export"
)

func lines(n int) []dto.OrderLineResponse {
	out := make([]dto.OrderLineResponse, n)
	for i := range out {
		out[i] = dto.OrderLineResponse{Name: fmt.Sprintf("Supply %02d", i), Category: "Meds", Stock: 1, SuggestedQty: 8}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Paginate
// ─────────────────────────────────────────────────────────────────────────────

func TestPaginate_RespetaPresupuesto(t *testing.T) {
	pages := export.Paginate(lines(7), 3)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 3)
	assert.Len(t, pages[1], 3)
	assert.Len(t, pages[2], 1)
	assert.Equal(t, "Supply 06", pages[2][0].Name)
}

func TestPaginate_ExactoYVacio(t *testing.T) {
	assert.Len(t, export.Paginate(lines(6), 3), 2)
	empty := export.Paginate(nil, 3)
	require.Len(t, empty, 1)
	assert.Empty(t, empty[0])
	assert.Len(t, export.Paginate(lines(40), 0), 2, "presupuesto inválido usa el valor por defecto")
}

// ─────────────────────────────────────────────────────────────────────────────
// Texto imprimible
// ─────────────────────────────────────────────────────────────────────────────

func TestOrderListText_SaltosDePaginaYEncabezado(t *testing.T) {
	cost := decimal.RequireFromString("1234.5")
	list := &dto.OrderListResponse{
		SiteName:           "North Clinic",
		Threshold:          4,
		GeneratedAt:        time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		Lines:              lines(5),
		TotalEstimatedCost: cost,
	}
	list.Lines[0].EstimatedCost = &cost

	out := export.OrderListText(list, 2)
	pages := strings.Split(out, export.PageBreak)
	require.Len(t, pages, 3)
	for i, p := range pages {
		assert.Contains(t, p, "LISTA DE PEDIDO - North Clinic")
		assert.Contains(t, p, fmt.Sprintf("Página %d/3", i+1))
	}
	assert.Contains(t, pages[0], "$1,234.50")
	assert.Contains(t, pages[2], "Total estimado: $1,234.50")
	assert.NotContains(t, pages[0], "Total estimado")
}

func TestOrderListText_Vacia(t *testing.T) {
	out := export.OrderListText(&dto.OrderListResponse{SiteName: "South"}, 35)
	assert.NotContains(t, out, export.PageBreak)
	assert.Contains(t, out, "Sin insumos en stock bajo.")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", export.FormatMoney(decimal.Zero))
	assert.Equal(t, "999.10", export.FormatMoney(decimal.RequireFromString("999.1")))
	assert.Equal(t, "1,000,000.00", export.FormatMoney(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-1,500.25", export.FormatMoney(decimal.RequireFromString("-1500.25")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Caso de uso
// ─────────────────────────────────────────────────────────────────────────────

type fakeSource struct {
	list *dto.OrderListResponse
	err  error
}

func (f fakeSource) Generate(context.Context, string) (*dto.OrderListResponse, error) {
	return f.list, f.err
}

type fakeGenerator struct{ pages int }

func (f *fakeGenerator) GenerateOrderListPDF(_ context.Context, _ *dto.OrderListResponse, pages [][]dto.OrderLineResponse) ([]byte, error) {
	f.pages = len(pages)
	return []byte("%PDF-fake"), nil
}

func TestOrderListExport_PDFPaginaAntesDeRenderizar(t *testing.T) {
	gen := &fakeGenerator{}
	list := &dto.OrderListResponse{SiteID: "north", GeneratedAt: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Lines: lines(71)}
	uc := export.NewOrderListExportUseCase(fakeSource{list: list}, gen, 35)
	doc, filename, err := uc.PDF(context.Background(), "north")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Equal(t, "lista-pedido-north-20260309.pdf", filename)
	assert.Equal(t, 3, gen.pages)
}

func TestOrderListExport_Errores(t *testing.T) {
	boom := errors.New("boom")
	uc := export.NewOrderListExportUseCase(fakeSource{err: boom}, &fakeGenerator{}, 0)
	assert.Equal(t, export.DefaultLinesPerPage, uc.LinesPerPage())
	_, _, err := uc.PDF(context.Background(), "north")
	assert.ErrorIs(t, err, boom)
	_, err = uc.Text(context.Background(), "north")
	assert.ErrorIs(t, err, boom)

	noGen := export.NewOrderListExportUseCase(fakeSource{}, nil, 10)
	_, _, err = noGen.PDF(context.Background(), "north")
	assert.ErrorIs(t, err, export.ErrPDFGeneratorNotConfigured)
}
