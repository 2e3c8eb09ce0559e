// Package pdf implementa la lista de pedido imprimible de una sede en PDF.
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lista de pedido + Sede │ Fecha + Umbral + Página    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Insumo | Categoría | Stock | Pedir | UPC | Costo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO (solo última página)                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/application/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLow     = &props.Color{Red: 178, Green: 34, Blue: 34}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ export.OrderListPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa export.OrderListPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderListPDF genera el PDF y devuelve sus bytes. Cada elemento de pages es una
// página maroto con su propio encabezado.
func (g *MarotoPDFGenerator) GenerateOrderListPDF(
	_ context.Context,
	list *dto.OrderListResponse,
	pages [][]dto.OrderLineResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de pedido", true).
		WithAuthor(list.SiteName, true).
		Build()

	m := maroto.New(cfg)

	if len(pages) == 0 {
		pages = [][]dto.OrderLineResponse{{}}
	}
	for i, lines := range pages {
		rows := []core.Row{
			headerRow(list, i+1, len(pages)),
			line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
			tableHeaderRow(),
			line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}),
		}
		if len(lines) == 0 {
			rows = append(rows, emptyRow())
		}
		rows = append(rows, tableDetailRows(lines)...)
		if i == len(pages)-1 {
			rows = append(rows, line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
			rows = append(rows, totalRow(list))
		}
		m.AddPages(page.New().Add(rows...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + sede (izq) y fecha, umbral y página (der).
func headerRow(list *dto.OrderListResponse, pageNum, total int) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("LISTA DE PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(list.SiteName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generada: "+list.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Umbral de stock bajo: "+strconv.Itoa(list.Threshold), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Página %d de %d", pageNum, total), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 11,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de insumos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Insumo", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Pedir", 1, align.Center),
		h("UPC", 2, align.Left),
		h("Costo est.", 2, align.Right),
	)
}

// tableDetailRows: una fila por insumo en stock bajo.
func tableDetailRows(lines []dto.OrderLineResponse) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Category, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Stock), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorLow,
			})),
			col.New(1).Add(text.New(strconv.Itoa(l.SuggestedQty), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.UPC, "—"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(estimatedCost(l), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func emptyRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Sin insumos en stock bajo.", props.Text{
			Size: 9, Align: align.Center, Top: 3, Color: colorGray,
		}),
	))
}

// totalRow: total estimado alineado a la derecha.
func totalRow(list *dto.OrderListResponse) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL ESTIMADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+export.FormatMoney(list.TotalEstimatedCost), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func estimatedCost(l dto.OrderLineResponse) string {
	if l.EstimatedCost == nil {
		return "—"
	}
	return "$" + export.FormatMoney(*l.EstimatedCost)
}
