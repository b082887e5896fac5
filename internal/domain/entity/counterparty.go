package entity

import "time"

// Tipos de contraparte.
const (
	CounterpartyKindFactory = "factory"
	CounterpartyKindCargo   = "cargo"
	CounterpartyKindFF      = "ff"
	CounterpartyKindCarrier = "carrier"
	CounterpartyKindWB      = "wb"
	CounterpartyKindOther   = "other"
)

// ValidCounterpartyKind indica si kind es un tipo de contraparte conocido.
func ValidCounterpartyKind(kind string) bool {
	switch kind {
	case CounterpartyKindFactory, CounterpartyKindCargo, CounterpartyKindFF,
		CounterpartyKindCarrier, CounterpartyKindWB, CounterpartyKindOther:
		return true
	}
	return false
}

// Counterparty proveedor, fábrica, transportista u otra contraparte.
type Counterparty struct {
	ID        string
	Name      string
	Kind      string
	Phone     string
	Email     string
	CreatedAt time.Time
}
