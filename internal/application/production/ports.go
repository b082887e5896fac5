package production

import (
	"context"
	"time"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// WriteOffTxRunner ejecuta el descargo en una transacción serializada por ubicación de origen:
// dos descargos contra la misma ubicación corren uno después del otro.
type WriteOffTxRunner interface {
	RunWriteOff(ctx context.Context, locationID string, fn func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// RecipeTxRunner transacción para mantener fichas técnicas (cambio de ficha por defecto).
type RecipeTxRunner interface {
	RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error
}

// OrderTxRunner transacción para crear un pedido junto con sus partidas.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		batchRepo repository.BatchRepository,
	) error) error
}

// WriteOffObserver recibe el resultado de cada intento de descargo (métricas).
type WriteOffObserver interface {
	ObserveWriteOff(outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveWriteOff(string, time.Duration) {}
