package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionBatch partida de producción de un producto/color/talla dentro de un pedido.
// Los campos de costo quedan nulos hasta el descargo de materiales.
type ProductionBatch struct {
	ID                  string
	OrderID             string
	ProductID           string
	Color               string
	Size                string
	PlannedQuantity     int
	RecipeID            string // ficha técnica explícita; vacío = la por defecto del producto
	MaterialCostTotal   decimal.NullDecimal
	MaterialCostPerUnit decimal.NullDecimal
	CreatedAt           time.Time
}

// WrittenOff indica si la partida ya tiene costo de materiales.
func (b *ProductionBatch) WrittenOff() bool {
	return b.MaterialCostTotal.Valid
}
