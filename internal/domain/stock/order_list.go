package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/MedStock-api/internal/domain/entity"
)

// Summary totales de la sede (tarjetas del panel lateral).
type Summary struct {
	Supplies   int
	TotalStock int
	LowStock   int
}

// Summarize calcula los totales clasificando cada insumo con el umbral actual.
func (r Reconciler) Summarize(supplies []*entity.Supply) Summary {
	var sum Summary
	for _, s := range supplies {
		sum.Supplies++
		sum.TotalStock += s.Stock
		if r.IsLow(s.Stock) {
			sum.LowStock++
		}
	}
	return sum
}

// OrderLine una línea de la lista de pedido.
type OrderLine struct {
	Supply        entity.Supply
	SuggestedQty  int
	EstimatedCost *decimal.Decimal
}

// TargetStock nivel al que se repone: el doble del umbral más uno.
func (r Reconciler) TargetStock() int {
	return 2*r.threshold + 1
}

// OrderList devuelve el subconjunto en stock bajo de la lista ordenada para display,
// con la cantidad sugerida para alcanzar TargetStock (mínimo 1) y el costo estimado
// cuando el insumo tiene costo unitario.
func (r Reconciler) OrderList(supplies []*entity.Supply) []OrderLine {
	sorted := SortForDisplay(supplies)
	lines := make([]OrderLine, 0, len(sorted))
	for _, s := range sorted {
		current := r.Reclassify(*s)
		if !current.LowStock {
			continue
		}
		qty := r.TargetStock() - current.Stock
		if qty < 1 {
			qty = 1
		}
		line := OrderLine{Supply: current, SuggestedQty: qty}
		if current.UnitCost != nil {
			cost := current.UnitCost.Mul(decimal.NewFromInt(int64(qty)))
			line.EstimatedCost = &cost
		}
		lines = append(lines, line)
	}
	return lines
}

// TotalEstimatedCost suma los costos estimados conocidos de las líneas.
func TotalEstimatedCost(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.EstimatedCost != nil {
			total = total.Add(*l.EstimatedCost)
		}
	}
	return total
}
