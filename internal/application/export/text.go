package export

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
)

// PageBreak separador de páginas en la versión imprimible.
const PageBreak = "\f"

// OrderListText renderiza la lista de pedido como texto plano imprimible, con encabezado
// en cada página y salto de página (form feed) entre páginas.
func OrderListText(list *dto.OrderListResponse, budget int) string {
	pages := Paginate(list.Lines, budget)
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString(PageBreak)
		}
		fmt.Fprintf(&b, "LISTA DE PEDIDO - %s\n", list.SiteName)
		fmt.Fprintf(&b, "Generada: %s   Umbral: %d   Página %d/%d\n\n",
			list.GeneratedAt.Format("2006-01-02 15:04"), list.Threshold, i+1, len(pages))

		if len(page) == 0 {
			b.WriteString("Sin insumos en stock bajo.\n")
			continue
		}
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Insumo\tCategoría\tStock\tPedir\tUPC\tCosto est.")
		for _, l := range page {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
				l.Name, l.Category, l.Stock, l.SuggestedQty, dash(l.UPC), costOrDash(l))
		}
		_ = tw.Flush()

		if i == len(pages)-1 && !list.TotalEstimatedCost.IsZero() {
			fmt.Fprintf(&b, "\nTotal estimado: $%s\n", FormatMoney(list.TotalEstimatedCost))
		}
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func costOrDash(l dto.OrderLineResponse) string {
	if l.EstimatedCost == nil {
		return "-"
	}
	return "$" + FormatMoney(*l.EstimatedCost)
}
