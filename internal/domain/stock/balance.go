// Package stock calcula saldos de mercadería terminada por partida y ubicación
// a partir de los documentos de movimiento.
package stock

import (
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// Key saldo de una partida en una ubicación.
type Key struct {
	BatchID    string
	LocationID string
}

// Balance recorre los documentos en orden de creación. Entrada suma al destino; salida y baja
// restan del origen; traslado resta del origen y suma al destino; un recuento fija el saldo
// del destino a la cantidad contada. Las claves con saldo cero se omiten.
func Balance(movements []*entity.StockMovement) map[Key]int {
	out := make(map[Key]int)
	for _, m := range movements {
		for _, it := range m.Items {
			from := Key{BatchID: it.BatchID, LocationID: m.FromLocationID}
			to := Key{BatchID: it.BatchID, LocationID: m.ToLocationID}
			switch m.Kind {
			case entity.StockKindIncome:
				out[to] += it.Quantity
			case entity.StockKindOutcome, entity.StockKindWriteOff:
				out[from] -= it.Quantity
			case entity.StockKindTransfer:
				out[from] -= it.Quantity
				out[to] += it.Quantity
			case entity.StockKindInventory:
				out[to] = it.Quantity
			}
		}
	}
	for k, v := range out {
		if v == 0 {
			delete(out, k)
		}
	}
	return out
}

// AtLocation saldos de una ubicación por partida.
func AtLocation(balance map[Key]int, locationID string) map[string]int {
	out := make(map[string]int)
	for k, v := range balance {
		if k.LocationID == locationID {
			out[k.BatchID] = v
		}
	}
	return out
}

// Need unidades de cada partida que saca un documento, en orden de primera aparición.
func Need(items []entity.StockMovementItem) ([]string, map[string]int) {
	order := make([]string, 0, len(items))
	qty := make(map[string]int, len(items))
	for _, it := range items {
		if _, ok := qty[it.BatchID]; !ok {
			order = append(order, it.BatchID)
		}
		qty[it.BatchID] += it.Quantity
	}
	return order, qty
}

// Shortages partidas cuyo requerimiento supera el saldo disponible. Partida ausente = cero.
func Shortages(order []string, need map[string]int, available map[string]int) []domain.GoodsShortage {
	var out []domain.GoodsShortage
	for _, id := range order {
		if have := available[id]; have < need[id] {
			out = append(out, domain.GoodsShortage{BatchID: id, Required: need[id], Available: have})
		}
	}
	return out
}
