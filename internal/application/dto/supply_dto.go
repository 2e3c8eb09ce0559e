package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest entrada para crear un insumo.
type CreateSupplyRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Category string           `json:"category" validate:"required"`
	Stock    *int             `json:"stock" validate:"required,min=0"`
	UPC      string           `json:"upc" validate:"omitempty,max=64"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// UpdateSupplyRequest entrada para actualizar metadatos (el stock solo cambia con ajustes o escaneos).
type UpdateSupplyRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category"`
	UPC      *string          `json:"upc"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// AdjustStockRequest ajuste manual (+1 / -1 desde la UI, cualquier entero distinto de cero).
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ScanRequest escaneo por nombre o código de barras.
type ScanRequest struct {
	Key   string `json:"key" validate:"required"`
	Mode  string `json:"mode" validate:"omitempty,oneof=in out"`
	Field string `json:"field" validate:"omitempty,oneof=name upc"`
}

// SupplyResponse salida de un insumo.
type SupplyResponse struct {
	ID        string           `json:"id"`
	SiteID    string           `json:"site_id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Stock     int              `json:"stock"`
	LowStock  bool             `json:"low_stock"`
	UPC       string           `json:"upc,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// InventorySummary totales de la sede.
type InventorySummary struct {
	Supplies   int `json:"supplies"`
	TotalStock int `json:"total_stock"`
	LowStock   int `json:"low_stock"`
	Threshold  int `json:"threshold"`
}

// InventoryResponse lista filtrada y ordenada más los totales de toda la sede.
type InventoryResponse struct {
	Items   []SupplyResponse `json:"items"`
	Summary InventorySummary `json:"summary"`
}

// SupplyMutationResponse resultado de una mutación: el insumo afectado y la colección releída.
// Si la relectura falla después de una escritura confirmada, Inventory es nil y RefetchFailed true.
type SupplyMutationResponse struct {
	Supply        *SupplyResponse    `json:"supply,omitempty"`
	Inventory     *InventoryResponse `json:"inventory,omitempty"`
	RefetchFailed bool               `json:"refetch_failed,omitempty"`
}

// ScanResponse resultado de un escaneo. Con outcome "not_found" Draft trae la clave prellenada.
type ScanResponse struct {
	Outcome       string             `json:"outcome"`
	Mode          string             `json:"mode"`
	Field         string             `json:"field"`
	PreviousStock *int               `json:"previous_stock,omitempty"`
	Supply        *SupplyResponse    `json:"supply,omitempty"`
	Draft         *SupplyDraft       `json:"draft,omitempty"`
	Inventory     *InventoryResponse `json:"inventory,omitempty"`
}

// SupplyDraft borrador para el flujo de creación tras un escaneo sin coincidencia.
type SupplyDraft struct {
	Name     string `json:"name"`
	UPC      string `json:"upc,omitempty"`
	Stock    int    `json:"stock"`
	LowStock bool   `json:"low_stock"`
}

// OrderLineResponse una línea de la lista de pedido.
type OrderLineResponse struct {
	SupplyID      string           `json:"supply_id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Stock         int              `json:"stock"`
	UPC           string           `json:"upc,omitempty"`
	SuggestedQty  int              `json:"suggested_qty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
}

// OrderListResponse lista de pedido de una sede.
type OrderListResponse struct {
	SiteID             string              `json:"site_id"`
	SiteName           string              `json:"site_name"`
	Threshold          int                 `json:"threshold"`
	GeneratedAt        time.Time           `json:"generated_at"`
	Lines              []OrderLineResponse `json:"lines"`
	TotalEstimatedCost decimal.Decimal     `json:"total_estimated_cost"`
}
