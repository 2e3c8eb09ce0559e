package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas de insumos. AllCategories solo se usa como filtro, nunca se persiste.
const (
	CategoryMeds            = "Meds"
	CategoryWoundCare       = "Wound Care"
	CategoryTopicals        = "Topicals"
	CategoryEnvironmentCare = "Environment Care"
	CategoryGlucoseKit      = "Glucose Kit"
	CategoryMiscSupplies    = "Misc Supplies"
	CategoryPPE             = "PPE"

	AllCategories = "All categories"
)

// Categories lista las categorías persistibles en el orden en que se ofrecen al cliente.
var Categories = []string{
	CategoryMeds,
	CategoryWoundCare,
	CategoryTopicals,
	CategoryEnvironmentCare,
	CategoryGlucoseKit,
	CategoryMiscSupplies,
	CategoryPPE,
}

// IsValidCategory indica si c es una categoría persistible (el centinela AllCategories no lo es).
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// Supply representa un insumo inventariado en una sede.
// LowStock es derivado de Stock y del umbral configurado; solo lo calcula el reconciliador (domain/stock).
type Supply struct {
	ID        string
	SiteID    string
	Name      string
	Category  string
	Stock     int
	LowStock  bool
	UPC       string           // código de barras opcional, clave alternativa para escaneo
	UnitCost  *decimal.Decimal // costo unitario opcional, solo para estimar la lista de pedido
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Campos por los que se permite consultar por igualdad (query_equals del almacén).
const (
	FieldName     = "name"
	FieldUPC      = "upc"
	FieldCategory = "category"
)

// IsQueryableField indica si f puede usarse en FindByField.
func IsQueryableField(f string) bool {
	return f == FieldName || f == FieldUPC || f == FieldCategory
}

// CollectionPath devuelve la ruta lógica de la colección de insumos de una sede.
func CollectionPath(siteID string) string {
	return "sites/" + siteID + "/supplies"
}
