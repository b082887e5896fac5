package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra de insumos a un proveedor.
type Purchase struct {
	ID         string
	SupplierID string
	Date       time.Time
	Currency   string
	Comment    string
	Items      []PurchaseItem
	CreatedAt  time.Time
}

// PurchaseItem línea de compra; UnitPrice = Amount / Quantity (4 decimales).
type PurchaseItem struct {
	ID         string
	PurchaseID string
	MaterialID string
	Quantity   decimal.Decimal
	Amount     decimal.Decimal
	UnitPrice  decimal.Decimal
}

// Total suma de importes de la compra.
func (p *Purchase) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Amount)
	}
	return total
}
