package entity

import "time"

// Product representa un artículo terminado del catálogo (artículo único).
type Product struct {
	ID        string
	Article   string // artículo del vendedor, único
	Name      string
	Color     string
	Size      string
	Category  string
	CreatedAt time.Time
}
