package stock

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/MedStock-api/internal/domain/entity"
)

// SortForDisplay ordena de forma estable: categoría (lexicográfica) y luego nombre con
// comparación sensible al idioma. La lista principal y la de pedido usan el mismo orden.
// No modifica la entrada.
func SortForDisplay(supplies []*entity.Supply) []*entity.Supply {
	out := make([]*entity.Supply, len(supplies))
	copy(out, supplies)

	// collate.Collator no es seguro para uso concurrente; uno por llamada.
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return col.CompareString(a.Name, b.Name) < 0
	})
	return out
}

// Filter conserva los insumos cuyo nombre contiene term (sin distinguir mayúsculas) y cuya
// categoría es category. category vacío o AllCategories no restringe.
func Filter(supplies []*entity.Supply, term, category string) []*entity.Supply {
	needle := strings.ToLower(strings.TrimSpace(term))
	anyCategory := category == "" || category == entity.AllCategories

	out := make([]*entity.Supply, 0, len(supplies))
	for _, s := range supplies {
		if !strings.Contains(strings.ToLower(s.Name), needle) {
			continue
		}
		if !anyCategory && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	return out
}
