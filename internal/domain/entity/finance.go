package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación de dinero.
const (
	MoneyKindIncome   = "income"   // entrada: solo cuenta destino
	MoneyKindExpense  = "expense"  // gasto: solo cuenta origen
	MoneyKindTransfer = "transfer" // traspaso entre cuentas
)

// ValidMoneyKind indica si kind es un tipo de operación conocido.
func ValidMoneyKind(kind string) bool {
	switch kind {
	case MoneyKindIncome, MoneyKindExpense, MoneyKindTransfer:
		return true
	}
	return false
}

// MoneyAccount cuenta bancaria, caja o cuenta en otra moneda.
type MoneyAccount struct {
	ID        string
	Name      string
	Currency  string
	CreatedAt time.Time
}

// MoneyCategory partida de gasto o ingreso ("Pago a proveedor", "Carga", "Fulfillment Moscú").
type MoneyCategory struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// MoneyTransaction operación de dinero, opcionalmente ligada a pedido, contraparte y partida.
type MoneyTransaction struct {
	ID             string
	Kind           string
	Date           time.Time
	Amount         decimal.Decimal // en Currency, 2 decimales
	Currency       string
	ExchangeRate   decimal.Decimal // a rublos, 4 decimales
	FromAccountID  string
	ToAccountID    string
	OrderID        string
	CounterpartyID string
	CategoryID     string
	Comment        string
	CreatedAt      time.Time
}

// AmountRUB importe convertido a rublos, 2 decimales.
func (t *MoneyTransaction) AmountRUB() decimal.Decimal {
	return t.Amount.Mul(t.ExchangeRate).Round(2)
}
