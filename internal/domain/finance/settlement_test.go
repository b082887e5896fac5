package finance

import (
	"testing"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineAmount(t *testing.T) {
	assert.True(t, d("1234.50").Equal(LineAmount(150, d("8.23"))))
	assert.True(t, d("0.01").Equal(LineAmount(3, d("0.0033"))), "redondeo a 2 decimales")
}

func TestSettle(t *testing.T) {
	order := &entity.PurchaseOrder{ID: "o1", Currency: "KGS", ExchangeRate: d("1.05")}
	items := []*entity.OrderItem{
		{Amount: d("1000.00")},
		{Amount: d("500.00")},
	}
	txs := []*entity.MoneyTransaction{
		{OrderID: "o1", Kind: entity.MoneyKindExpense, Currency: "KGS", Amount: d("600"), ExchangeRate: d("1.1")},
		{OrderID: "o1", Kind: entity.MoneyKindExpense, Currency: "RUB", Amount: d("300"), ExchangeRate: d("1")},
		{OrderID: "o1", Kind: entity.MoneyKindIncome, Currency: "KGS", Amount: d("100"), ExchangeRate: d("1")},
		{OrderID: "o1", Kind: entity.MoneyKindTransfer, Currency: "KGS", Amount: d("999"), ExchangeRate: d("1")},
		{OrderID: "otro", Kind: entity.MoneyKindExpense, Currency: "KGS", Amount: d("999"), ExchangeRate: d("1")},
	}

	s := Settle(order, items, txs)
	assert.True(t, d("1500").Equal(s.TotalCurrency))
	assert.True(t, d("1575").Equal(s.TotalRUB))
	assert.True(t, d("500").Equal(s.PaidCurrency), "600 pagado − 100 devuelto; el pago en RUB no cuenta en KGS")
	assert.True(t, d("860").Equal(s.PaidRUB), "660 + 300 − 100")
	assert.True(t, d("1000").Equal(s.OutstandingCurrency))
	assert.True(t, d("715").Equal(s.OutstandingRUB))
}

func TestSettle_SinTipoDeCambioEsUno(t *testing.T) {
	s := Settle(&entity.PurchaseOrder{ID: "o1", Currency: "RUB"}, []*entity.OrderItem{{Amount: d("10")}}, nil)
	assert.True(t, d("10").Equal(s.TotalRUB))
	assert.True(t, d("10").Equal(s.OutstandingRUB))
}

func TestAccountBalance(t *testing.T) {
	txs := []*entity.MoneyTransaction{
		{Kind: entity.MoneyKindIncome, ToAccountID: "caja", Amount: d("100")},
		{Kind: entity.MoneyKindExpense, FromAccountID: "caja", Amount: d("30")},
		{Kind: entity.MoneyKindTransfer, FromAccountID: "caja", ToAccountID: "banco", Amount: d("20")},
	}
	assert.True(t, d("50").Equal(AccountBalance("caja", txs)))
	assert.True(t, d("20").Equal(AccountBalance("banco", txs)))
	assert.True(t, AccountBalance("otra", txs).IsZero())
}
