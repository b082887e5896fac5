package memory

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner          = (*Store)(nil)
	_ production.WriteOffTxRunner = (*Store)(nil)
	_ production.RecipeTxRunner   = (*Store)(nil)
	_ production.OrderTxRunner    = (*Store)(nil)
	_ wb.ImportTxRunner           = (*Store)(nil)
	_ stock.TxRunner              = (*Store)(nil)
)

// Run todas las transacciones en memoria son exclusivas; lockLocationIDs no agrega nada.
func (s *Store) Run(ctx context.Context, _ []string, fn func(
	ledgerRepo repository.LedgerRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(h handle) error {
		return fn(&LedgerRepo{h: h}, &PurchaseRepo{h: h})
	})
}

// RunWriteOff transacción exclusiva para el descargo.
func (s *Store) RunWriteOff(ctx context.Context, _ string, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(h handle) error {
		return fn(&LedgerRepo{h: h}, &BatchRepo{h: h}, &PurchaseRepo{h: h})
	})
}

// RunRecipes transacción para cambiar la ficha por defecto.
func (s *Store) RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(h handle) error {
		return fn(&RecipeRepo{h: h})
	})
}

// RunOrders transacción para crear un pedido con sus partidas.
func (s *Store) RunOrders(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	batchRepo repository.BatchRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(h handle) error {
		return fn(&OrderRepo{h: h}, &BatchRepo{h: h})
	})
}

// RunImport transacción para volcar las filas de una importación WB.
func (s *Store) RunImport(ctx context.Context, fn func(repo repository.WBImportRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(h handle) error {
		return fn(&WBImportRepo{h: h})
	})
}

// RunStock transacción de mercadería; las claves de lock sobran con la exclusión global.
func (s *Store) RunStock(ctx context.Context, _ []string, fn func(
	stockRepo repository.StockRepository,
	supplyRepo repository.SupplyRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inTx(func(h handle) error {
		return fn(&StockRepo{h: h}, &SupplyRepo{h: h})
	})
}
