// Package stock contiene el reconciliador de inventario: aplica mutaciones de stock
// a un insumo y recalcula su marca de stock bajo. Es lógica de dominio pura, sin I/O.
//
// Invariante: LowStock == Classify(Stock, umbral) después de cualquier función de este paquete
// que devuelva un insumo.
package stock

import "github.com/jhoicas/MedStock-api/internal/domain/entity"

// Floor es el mínimo de stock admitido; toda ruta que reduce stock se recorta aquí.
const Floor = 0

// DefaultThreshold umbral de stock bajo cuando la configuración no define uno.
const DefaultThreshold = 4

// Classify indica si un stock está en nivel bajo: stock <= threshold.
// Es la única fuente de verdad tanto al leer como al persistir la marca.
func Classify(stock, threshold int) bool {
	return stock <= threshold
}

// Reconciler aplica mutaciones de stock con un umbral fijo.
type Reconciler struct {
	threshold int
}

// NewReconciler construye el reconciliador con el umbral configurado.
func NewReconciler(threshold int) Reconciler {
	return Reconciler{threshold: threshold}
}

// Threshold devuelve el umbral configurado.
func (r Reconciler) Threshold() int { return r.threshold }

// IsLow clasifica un stock con el umbral del reconciliador.
func (r Reconciler) IsLow(stock int) bool {
	return Classify(stock, r.threshold)
}

// ApplyDelta suma delta al stock, recorta en Floor y recalcula LowStock en la misma operación.
// No falla: cualquier insumo válido produce un siguiente estado.
func (r Reconciler) ApplyDelta(current entity.Supply, delta int) entity.Supply {
	next := current
	next.Stock = clampStock(current.Stock + delta)
	next.LowStock = r.IsLow(next.Stock)
	return next
}

// Reclassify recalcula la marca de un insumo leído del almacén (registros escritos con otro umbral
// se presentan de forma consistente).
func (r Reconciler) Reclassify(s entity.Supply) entity.Supply {
	s.Stock = clampStock(s.Stock)
	s.LowStock = r.IsLow(s.Stock)
	return s
}

// NewSupply prepara un insumo para su creación: stock recortado y marca calculada.
func (r Reconciler) NewSupply(draft entity.Supply) entity.Supply {
	return r.Reclassify(draft)
}

func clampStock(n int) int {
	if n < Floor {
		return Floor
	}
	return n
}
