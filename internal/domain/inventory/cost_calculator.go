package inventory

import (
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Escalas de almacenamiento (columnas NUMERIC).
const (
	QuantityScale  = 3 // cantidades de material
	UnitPriceScale = 4 // precio / costo unitario
	MoneyScale     = 2 // importes
)

// UnitPrice deriva el precio unitario de una línea de compra: importe / cantidad, a 4 decimales.
// Cantidad no positiva = cero.
func UnitPrice(amount, quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return amount.DivRound(quantity, UnitPriceScale)
}

// MaterialCost costo de materiales de una partida: total redondeado a 2 decimales y
// costo por unidad = total / cantidad planificada, también a 2 decimales (redondeo half away from zero).
func MaterialCost(total decimal.Decimal, planned int) (totalRounded, perUnit decimal.Decimal) {
	totalRounded = total.Round(MoneyScale)
	if planned <= 0 {
		return totalRounded, decimal.Zero
	}
	perUnit = total.DivRound(decimal.NewFromInt(int64(planned)), MoneyScale)
	return totalRounded, perUnit
}

// NetBalance saldo neto por material en una ubicación: entradas (destino) menos salidas (origen).
// Asientos que no tocan la ubicación se ignoran; los saldos cero se omiten.
func NetBalance(locationID string, entries []*entity.LedgerEntry) map[string]decimal.Decimal {
	balance := make(map[string]decimal.Decimal)
	for _, e := range entries {
		var sign int64
		switch {
		case e.ToLocationID == locationID && e.FromLocationID == locationID:
			continue
		case e.ToLocationID == locationID:
			sign = 1
		case e.FromLocationID == locationID:
			sign = -1
		default:
			continue
		}
		for _, l := range e.Lines {
			balance[l.MaterialID] = balance[l.MaterialID].Add(l.Quantity.Mul(decimal.NewFromInt(sign)))
		}
	}
	for id, qty := range balance {
		if qty.IsZero() {
			delete(balance, id)
		}
	}
	return balance
}
