package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest partida dentro de un pedido. Con Price se agrega una línea de precio
// por la cantidad planificada.
type CreateBatchRequest struct {
	ProductID       string           `json:"product_id"`
	Color           string           `json:"color"`
	Size            string           `json:"size"`
	PlannedQuantity int              `json:"planned_quantity"`
	RecipeID        string           `json:"recipe_id,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Number       string               `json:"number"`
	Date         time.Time            `json:"date"`
	FactoryID    string               `json:"factory_id"`
	Currency     string               `json:"currency"`
	ExchangeRate *decimal.Decimal     `json:"exchange_rate,omitempty"`
	Batches      []CreateBatchRequest `json:"batches"`
}

// AddOrderItemRequest body para POST /api/orders/:id/items.
type AddOrderItemRequest struct {
	BatchID  string          `json:"batch_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderItemResponse línea de precio del pedido.
type OrderItemResponse struct {
	ID       string          `json:"id"`
	BatchID  string          `json:"batch_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price_currency"`
	Amount   decimal.Decimal `json:"amount_currency"`
}

// BatchResponse salida de una partida; los costos son nulos hasta el descargo.
type BatchResponse struct {
	ID                  string           `json:"id"`
	OrderID             string           `json:"order_id"`
	ProductID           string           `json:"product_id"`
	Color               string           `json:"color,omitempty"`
	Size                string           `json:"size,omitempty"`
	PlannedQuantity     int              `json:"planned_quantity"`
	RecipeID            string           `json:"recipe_id,omitempty"`
	MaterialCostTotal   *decimal.Decimal `json:"material_cost_total"`
	MaterialCostPerUnit *decimal.Decimal `json:"material_cost_per_unit"`
	CreatedAt           time.Time        `json:"created_at"`
}

// OrderResponse salida de un pedido con sus partidas, líneas de precio y totales.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	Date          time.Time           `json:"date"`
	FactoryID     string              `json:"factory_id"`
	Currency      string              `json:"currency"`
	ExchangeRate  decimal.Decimal     `json:"exchange_rate"`
	Status        string              `json:"status"`
	Batches       []BatchResponse     `json:"batches"`
	Items         []OrderItemResponse `json:"items"`
	TotalCurrency decimal.Decimal     `json:"total_amount_currency"`
	TotalRUB      decimal.Decimal     `json:"total_amount_rub"`
	CreatedAt     time.Time           `json:"created_at"`
}

// WriteOffRequest body para POST /api/batches/:id/writeoff.
type WriteOffRequest struct {
	LocationID string `json:"location_id"`
}

// ShortageResponse faltante de un material.
type ShortageResponse struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
}

// InsufficientStockResponse cuerpo de error con la lista completa de faltantes.
type InsufficientStockResponse struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Shortages []ShortageResponse `json:"shortages"`
}
