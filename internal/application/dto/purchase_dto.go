package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra: cantidad e importe total; el precio unitario se deriva.
type PurchaseItemRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// CreatePurchaseRequest body para POST /api/purchases.
// Con ReceiveLocationID se registra en la misma transacción la entrada al libro.
type CreatePurchaseRequest struct {
	SupplierID        string                `json:"supplier_id"`
	Date              time.Time             `json:"date"`
	Currency          string                `json:"currency"`
	Comment           string                `json:"comment,omitempty"`
	ReceiveLocationID string                `json:"receive_location_id,omitempty"`
	Items             []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	SupplierID    string                 `json:"supplier_id"`
	Date          time.Time              `json:"date"`
	Currency      string                 `json:"currency"`
	Comment       string                 `json:"comment,omitempty"`
	Items         []PurchaseItemResponse `json:"items"`
	Total         decimal.Decimal        `json:"total"`
	IncomeEntryID string                 `json:"income_entry_id,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}
