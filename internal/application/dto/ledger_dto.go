package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLineRequest línea de un movimiento manual. UnitCost opcional: por defecto el último precio de compra.
type MovementLineRequest struct {
	MaterialID string           `json:"material_id"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
}

// RecordMovementRequest body para POST /api/ledger/entries (income / transfer).
type RecordMovementRequest struct {
	Kind           string                `json:"kind"`
	FromLocationID string                `json:"from_location_id,omitempty"`
	ToLocationID   string                `json:"to_location_id,omitempty"`
	Comment        string                `json:"comment,omitempty"`
	Lines          []MovementLineRequest `json:"lines"`
}

// LedgerLineResponse línea de asiento.
type LedgerLineResponse struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Amount     decimal.Decimal `json:"amount"`
}

// LedgerEntryResponse salida de un asiento del libro.
type LedgerEntryResponse struct {
	ID             string               `json:"id"`
	Kind           string               `json:"kind"`
	FromLocationID string               `json:"from_location_id,omitempty"`
	ToLocationID   string               `json:"to_location_id,omitempty"`
	PurchaseID     string               `json:"purchase_id,omitempty"`
	BatchID        string               `json:"batch_id,omitempty"`
	Comment        string               `json:"comment,omitempty"`
	Lines          []LedgerLineResponse `json:"lines"`
	TotalCost      decimal.Decimal      `json:"total_cost"`
	CreatedAt      time.Time            `json:"created_at"`
}

// BalanceRow fila del reporte de saldos de una ubicación.
type BalanceRow struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Color      string          `json:"color,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
}

// BalanceReport saldos no nulos de una ubicación ordenados por nombre de material.
type BalanceReport struct {
	LocationID   string       `json:"location_id"`
	LocationName string       `json:"location_name"`
	Rows         []BalanceRow `json:"rows"`
}
