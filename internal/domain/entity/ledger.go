package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro de movimientos.
const (
	LedgerKindIncome   = "income"   // entrada: solo destino
	LedgerKindTransfer = "transfer" // traslado: origen y destino
	LedgerKindWriteOff = "writeoff" // descargo: solo origen
)

// LedgerEntry asiento inmutable de un evento de inventario. Dueño de sus líneas.
type LedgerEntry struct {
	ID             string
	Kind           string
	FromLocationID string
	ToLocationID   string
	PurchaseID     string
	BatchID        string
	Comment        string
	Lines          []LedgerLine
	CreatedAt      time.Time
}

// LedgerLine (material, cantidad, costo unitario al momento del movimiento). Inmutable.
type LedgerLine struct {
	ID         string
	EntryID    string
	MaterialID string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}

// Amount cantidad × costo unitario.
func (l LedgerLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// TotalCost suma de Amount de todas las líneas.
func (e *LedgerEntry) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Touches indica si el asiento entra o sale de la ubicación.
func (e *LedgerEntry) Touches(locationID string) bool {
	return e.FromLocationID == locationID || e.ToLocationID == locationID
}
