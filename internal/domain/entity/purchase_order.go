package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido a fábrica.
const (
	OrderStatusDraft      = "draft"
	OrderStatusInProgress = "in_progress"
	OrderStatusDone       = "done"
)

// PurchaseOrder cabecera de un pedido de producción a una fábrica.
// ExchangeRate convierte los importes de Currency a rublos; cero se toma como 1.
type PurchaseOrder struct {
	ID           string
	Number       string
	Date         time.Time
	FactoryID    string
	Currency     string
	ExchangeRate decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

// Rate tipo de cambio a rublos del pedido.
func (o *PurchaseOrder) Rate() decimal.Decimal {
	if !o.ExchangeRate.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return o.ExchangeRate
}

// OrderItem línea de precio del pedido: unidades de una partida a un precio en la moneda del pedido.
type OrderItem struct {
	ID       string
	OrderID  string
	BatchID  string
	Quantity int
	Price    decimal.Decimal
	Amount   decimal.Decimal // Quantity × Price, 2 decimales
	Position int
}
