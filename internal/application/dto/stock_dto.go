package dto

import "time"

// StockItemRequest unidades de una partida en un movimiento de mercadería.
type StockItemRequest struct {
	BatchID  string `json:"batch_id"`
	Quantity int    `json:"quantity"`
}

// RecordStockMovementRequest body para POST /api/stock/movements.
type RecordStockMovementRequest struct {
	Kind           string             `json:"kind"`
	FromLocationID string             `json:"from_location_id,omitempty"`
	ToLocationID   string             `json:"to_location_id,omitempty"`
	Comment        string             `json:"comment,omitempty"`
	Items          []StockItemRequest `json:"items"`
}

// StockItemResponse línea de un movimiento de mercadería.
type StockItemResponse struct {
	BatchID  string `json:"batch_id"`
	Quantity int    `json:"quantity"`
}

// StockMovementResponse salida de un movimiento de mercadería.
type StockMovementResponse struct {
	ID             string              `json:"id"`
	Kind           string              `json:"kind"`
	FromLocationID string              `json:"from_location_id,omitempty"`
	ToLocationID   string              `json:"to_location_id,omitempty"`
	SupplyID       string              `json:"supply_id,omitempty"`
	Comment        string              `json:"comment,omitempty"`
	Items          []StockItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

// StockBalanceFilter filtros del reporte de saldos de mercadería.
type StockBalanceFilter struct {
	Article    string `query:"article"`     // contiene, sin distinguir mayúsculas
	LocationID string `query:"location_id"` // vacío = todas
}

// StockBalanceRow saldo positivo de una partida en una ubicación.
type StockBalanceRow struct {
	BatchID      string `json:"batch_id"`
	OrderID      string `json:"order_id"`
	Article      string `json:"article"`
	Name         string `json:"name"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Balance      int    `json:"balance"`
}

// StockBalanceReport saldos de mercadería por partida y ubicación.
type StockBalanceReport struct {
	Filter StockBalanceFilter `json:"filter"`
	Rows   []StockBalanceRow  `json:"rows"`
	Total  int                `json:"total"`
}

// GoodsShortageResponse faltante de unidades de una partida.
type GoodsShortageResponse struct {
	BatchID   string `json:"batch_id"`
	Article   string `json:"article,omitempty"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// InsufficientGoodsResponse cuerpo de error con todas las partidas faltantes.
type InsufficientGoodsResponse struct {
	Code      string                  `json:"code"`
	Message   string                  `json:"message"`
	Shortages []GoodsShortageResponse `json:"shortages"`
}

// SupplyItemRequest unidades de una partida enviadas a una ubicación.
type SupplyItemRequest struct {
	BatchID    string `json:"batch_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// CreateSupplyRequest body para POST /api/orders/:id/supplies.
type CreateSupplyRequest struct {
	Number string              `json:"number"`
	Date   time.Time           `json:"date"`
	Items  []SupplyItemRequest `json:"items"`
}

// UpdateSupplyStatusRequest body para POST /api/supplies/:id/status.
type UpdateSupplyStatusRequest struct {
	Status string `json:"status"`
}

// SupplyItemResponse línea de una entrega.
type SupplyItemResponse struct {
	BatchID    string `json:"batch_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// SupplyResponse salida de una entrega. IncomeMovementIDs solo al aceptarla.
type SupplyResponse struct {
	ID                string               `json:"id"`
	OrderID           string               `json:"order_id"`
	Number            string               `json:"number"`
	Date              time.Time            `json:"date"`
	Status            string               `json:"status"`
	Items             []SupplyItemResponse `json:"items"`
	IncomeMovementIDs []string             `json:"income_movement_ids,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}
