package entity

import "time"

// Tipos de ubicación.
const (
	LocationKindProduction = "production" // taller / piso de producción
	LocationKindCargo      = "cargo"
	LocationKindFFBishkek  = "ff_bishkek" // fulfillment Bishkek
	LocationKindFFMoscow   = "ff_moscow"  // fulfillment Moscú
	LocationKindWB         = "wb"         // bodega del marketplace
	LocationKindOther      = "other"
)

// ValidLocationKind indica si kind es un tipo de ubicación conocido.
func ValidLocationKind(kind string) bool {
	switch kind {
	case LocationKindProduction, LocationKindCargo, LocationKindFFBishkek,
		LocationKindFFMoscow, LocationKindWB, LocationKindOther:
		return true
	}
	return false
}

// Location representa una bodega o punto de almacenamiento.
type Location struct {
	ID        string
	Name      string
	Kind      string
	CreatedAt time.Time
}
