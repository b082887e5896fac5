package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe ficha técnica: consumo de materiales por unidad producida de un producto.
// ProductID vacío = ficha pendiente de asignar.
type Recipe struct {
	ID        string
	ProductID string
	Name      string
	IsDefault bool
	Lines     []RecipeLine
	CreatedAt time.Time
}

// RecipeLine una línea (material, cantidad por unidad) de la ficha técnica, en orden de Position.
type RecipeLine struct {
	ID              string
	RecipeID        string
	MaterialID      string
	QuantityPerUnit decimal.Decimal
	Position        int
}
