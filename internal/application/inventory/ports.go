package inventory

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// lockLocationIDs se serializan (lock por ubicación) antes de llamar fn, en orden estable.
type TxRunner interface {
	Run(ctx context.Context, lockLocationIDs []string, fn func(
		ledgerRepo repository.LedgerRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
