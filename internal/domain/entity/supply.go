package entity

import "time"

// Estados de una entrega; solo avanzan.
const (
	SupplyStatusInTransit = "in_transit"
	SupplyStatusArrived   = "arrived"
	SupplyStatusAccepted  = "accepted"
)

var supplyStatusRank = map[string]int{
	SupplyStatusInTransit: 1,
	SupplyStatusArrived:   2,
	SupplyStatusAccepted:  3,
}

// ValidSupplyStatus indica si status es un estado de entrega conocido.
func ValidSupplyStatus(status string) bool {
	_, ok := supplyStatusRank[status]
	return ok
}

// SupplyAdvances indica si pasar de from a to avanza el estado.
func SupplyAdvances(from, to string) bool {
	return supplyStatusRank[to] > supplyStatusRank[from] && supplyStatusRank[from] > 0
}

// Supply entrega de partidas de un pedido (puede ser el número de entrega de WB).
type Supply struct {
	ID        string
	OrderID   string
	Number    string
	Date      time.Time
	Status    string
	Items     []SupplyItem
	CreatedAt time.Time
}

// SupplyItem cuántas unidades de una partida van a qué ubicación.
type SupplyItem struct {
	ID         string
	SupplyID   string
	BatchID    string
	LocationID string
	Quantity   int
}

// QuantityByBatch unidades de la entrega por partida.
func (s *Supply) QuantityByBatch() map[string]int {
	out := make(map[string]int, len(s.Items))
	for _, it := range s.Items {
		out[it.BatchID] += it.Quantity
	}
	return out
}
