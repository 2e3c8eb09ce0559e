package repository

import (
	"context"

	"github.com/jhoicas/MedStock-api/internal/domain/entity"
)

// SupplyRepository define el puerto del almacén de documentos para insumos (DIP).
// Todas las operaciones están acotadas a la colección de una sede (sites/{site}/supplies).
type SupplyRepository interface {
	// Create persiste el insumo y asigna su ID (supply.ID se sobrescribe).
	Create(ctx context.Context, supply *entity.Supply) error
	GetByID(ctx context.Context, siteID, id string) (*entity.Supply, error)
	ListBySite(ctx context.Context, siteID string) ([]*entity.Supply, error)
	// Update reemplaza los campos mutables (name, category, upc, unit_cost, stock, low_stock).
	// Toda escritura que parte de una lectura previa debe hacerse dentro de TxRunner.Run con GetForUpdate.
	Update(ctx context.Context, supply *entity.Supply) error
	Delete(ctx context.Context, siteID, id string) error
	// FindByField devuelve los insumos cuyo campo field es igual a value (query_equals).
	FindByField(ctx context.Context, siteID, field, value string) ([]*entity.Supply, error)
	// GetForUpdate bloquea el documento hasta el fin de la transacción en curso.
	GetForUpdate(ctx context.Context, siteID, id string) (*entity.Supply, error)
}
