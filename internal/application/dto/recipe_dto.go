package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineRequest línea de ficha técnica.
type RecipeLineRequest struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	ProductID string              `json:"product_id,omitempty"`
	Name      string              `json:"name"`
	IsDefault bool                `json:"is_default"`
	Lines     []RecipeLineRequest `json:"lines"`
}

// RecipeLineResponse línea de ficha técnica en respuestas.
type RecipeLineResponse struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// RecipeResponse salida de una ficha técnica.
type RecipeResponse struct {
	ID        string               `json:"id"`
	ProductID string               `json:"product_id,omitempty"`
	Name      string               `json:"name"`
	IsDefault bool                 `json:"is_default"`
	Lines     []RecipeLineResponse `json:"lines"`
	CreatedAt time.Time            `json:"created_at"`
}
