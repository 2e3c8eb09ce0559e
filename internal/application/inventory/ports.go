package inventory

import (
	"context"

	"github.com/jhoicas/MedStock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando el repositorio atado a esa tx.
// Garantiza que stock y low_stock se lean y escriban juntos en cada mutación.
type TxRunner interface {
	Run(ctx context.Context, fn func(supplies repository.SupplyRepository) error) error
}
