package entity

import "time"

// Material representa un insumo consumible (tela, etiqueta, empaque). Dato de referencia.
type Material struct {
	ID        string
	Name      string
	Unit      string // unidad de medida: m, pcs, kg...
	Color     string
	CreatedAt time.Time
}
