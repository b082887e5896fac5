package entity

import "time"

// Tipos de documento de movimiento de mercadería terminada.
const (
	StockKindIncome    = "income"    // entrada: solo destino
	StockKindOutcome   = "outcome"   // salida (venta, despacho): solo origen
	StockKindTransfer  = "transfer"  // traslado: origen y destino
	StockKindWriteOff  = "writeoff"  // baja (merma, defecto): solo origen
	StockKindInventory = "inventory" // recuento: solo destino, la cantidad es el saldo contado
)

// ValidStockKind indica si kind es un tipo de movimiento de mercadería conocido.
func ValidStockKind(kind string) bool {
	switch kind {
	case StockKindIncome, StockKindOutcome, StockKindTransfer, StockKindWriteOff, StockKindInventory:
		return true
	}
	return false
}

// StockMovement documento inmutable de movimiento de partidas entre ubicaciones.
// SupplyID enlaza la entrada generada al aceptar una entrega.
type StockMovement struct {
	ID             string
	Kind           string
	FromLocationID string
	ToLocationID   string
	SupplyID       string
	Comment        string
	Items          []StockMovementItem
	CreatedAt      time.Time
}

// StockMovementItem unidades de una partida dentro del documento.
type StockMovementItem struct {
	ID         string
	MovementID string
	BatchID    string
	Quantity   int
}

// Takes indica si el documento descuenta unidades del origen.
func (m *StockMovement) Takes() bool {
	switch m.Kind {
	case StockKindOutcome, StockKindTransfer, StockKindWriteOff:
		return true
	}
	return false
}

// Touches indica si el documento entra o sale de la ubicación.
func (m *StockMovement) Touches(locationID string) bool {
	return m.FromLocationID == locationID || m.ToLocationID == locationID
}
