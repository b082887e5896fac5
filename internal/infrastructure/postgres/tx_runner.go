package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner          = (*TxRunner)(nil)
	_ production.WriteOffTxRunner = (*TxRunner)(nil)
	_ production.RecipeTxRunner   = (*TxRunner)(nil)
	_ production.OrderTxRunner    = (*TxRunner)(nil)
	_ wb.ImportTxRunner           = (*TxRunner)(nil)
	_ stock.TxRunner              = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// lockLocations toma un advisory lock de transacción por ubicación, en orden estable para evitar deadlocks.
// Se libera solo al terminar la transacción.
func lockLocations(ctx context.Context, tx pgx.Tx, ids []string) error {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for _, id := range slices.Compact(sorted) {
		if id == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('ledger-location:' || $1::text))`, id); err != nil {
			return fmt.Errorf("lock location %s: %w", id, err)
		}
	}
	return nil
}

// Run movimientos manuales y compras: lock por ubicación y repos de libro y compras atados a la tx.
func (r *TxRunner) Run(ctx context.Context, lockLocationIDs []string, fn func(
	ledgerRepo repository.LedgerRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockLocations(ctx, tx, lockLocationIDs); err != nil {
			return err
		}
		return fn(NewLedgerRepository(tx), NewPurchaseRepository(tx))
	})
}

// RunWriteOff descargo: serializado por ubicación de origen; la partida se bloquea con FOR UPDATE dentro de fn.
func (r *TxRunner) RunWriteOff(ctx context.Context, locationID string, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockLocations(ctx, tx, []string{locationID}); err != nil {
			return err
		}
		return fn(NewLedgerRepository(tx), NewBatchRepository(tx), NewPurchaseRepository(tx))
	})
}

// RunRecipes transacción para cambiar la ficha por defecto.
func (r *TxRunner) RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewRecipeRepository(tx))
	})
}

// RunOrders transacción para crear un pedido con sus partidas.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewBatchRepository(tx))
	})
}

// RunImport transacción para volcar las filas de una importación WB.
func (r *TxRunner) RunImport(ctx context.Context, fn func(repo repository.WBImportRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewWBImportRepository(tx))
	})
}

// lockStock advisory locks de mercadería; las claves ya traen su prefijo (ubicación o pedido).
func lockStock(ctx context.Context, tx pgx.Tx, keys []string) error {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	for _, key := range slices.Compact(sorted) {
		if key == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('stock:' || $1::text))`, key); err != nil {
			return fmt.Errorf("lock stock %s: %w", key, err)
		}
	}
	return nil
}

// RunStock movimientos de mercadería y entregas.
func (r *TxRunner) RunStock(ctx context.Context, lockKeys []string, fn func(
	stockRepo repository.StockRepository,
	supplyRepo repository.SupplyRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockStock(ctx, tx, lockKeys); err != nil {
			return err
		}
		return fn(NewStockRepository(tx), NewSupplyRepository(tx))
	})
}
