package stock

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// TxRunner transacción de mercadería: movimientos y entregas atados a la misma tx.
// lockKeys se serializan antes de llamar fn, en orden estable.
type TxRunner interface {
	RunStock(ctx context.Context, lockKeys []string, fn func(
		stockRepo repository.StockRepository,
		supplyRepo repository.SupplyRepository,
	) error) error
}

// LocationLock clave de lock para el saldo de una ubicación.
func LocationLock(locationID string) string { return "location:" + locationID }

// OrderLock clave de lock para las entregas de un pedido.
func OrderLock(orderID string) string { return "order:" + orderID }

// BalanceSheetWriter genera el reporte de saldos de mercadería como hoja de cálculo.
type BalanceSheetWriter interface {
	StockReport(report *dto.StockBalanceReport) ([]byte, error)
}
