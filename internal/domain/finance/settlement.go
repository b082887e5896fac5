// Package finance reglas de importes de pedidos y cuentas de dinero.
package finance

import (
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Escalas de importes.
const (
	MoneyScale = 2
	RateScale  = 4
)

// LineAmount cantidad × precio, a 2 decimales.
func LineAmount(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale)
}

// Settlement importes de un pedido: total de sus líneas, lo pagado y lo pendiente,
// en la moneda del pedido y en rublos.
type Settlement struct {
	TotalCurrency       decimal.Decimal
	TotalRUB            decimal.Decimal
	PaidCurrency        decimal.Decimal
	PaidRUB             decimal.Decimal
	OutstandingCurrency decimal.Decimal
	OutstandingRUB      decimal.Decimal
}

// Settle cruza líneas y pagos del pedido. Un gasto ligado al pedido cuenta como pago y una
// entrada ligada como devolución. En moneda del pedido solo suman las operaciones en esa moneda;
// en rublos suman todas con su propio tipo de cambio.
func Settle(order *entity.PurchaseOrder, items []*entity.OrderItem, txs []*entity.MoneyTransaction) Settlement {
	var s Settlement
	for _, it := range items {
		s.TotalCurrency = s.TotalCurrency.Add(it.Amount)
	}
	s.TotalRUB = s.TotalCurrency.Mul(order.Rate()).Round(MoneyScale)

	for _, t := range txs {
		if t.OrderID != order.ID {
			continue
		}
		var sign decimal.Decimal
		switch t.Kind {
		case entity.MoneyKindExpense:
			sign = decimal.NewFromInt(1)
		case entity.MoneyKindIncome:
			sign = decimal.NewFromInt(-1)
		default:
			continue
		}
		if t.Currency == order.Currency {
			s.PaidCurrency = s.PaidCurrency.Add(t.Amount.Mul(sign))
		}
		s.PaidRUB = s.PaidRUB.Add(t.AmountRUB().Mul(sign))
	}
	s.OutstandingCurrency = s.TotalCurrency.Sub(s.PaidCurrency)
	s.OutstandingRUB = s.TotalRUB.Sub(s.PaidRUB)
	return s
}

// AccountBalance entradas menos salidas de la cuenta, en la moneda de la cuenta.
func AccountBalance(accountID string, txs []*entity.MoneyTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.ToAccountID == accountID {
			total = total.Add(t.Amount)
		}
		if t.FromAccountID == accountID {
			total = total.Sub(t.Amount)
		}
	}
	return total
}
