package dto

import "time"

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Unit  string `json:"unit" validate:"required,max=20"`
	Color string `json:"color"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Kind string `json:"kind" validate:"required,oneof=production cargo ff_bishkek ff_moscow wb other"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCounterpartyRequest entrada para crear una contraparte.
type CreateCounterpartyRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Kind  string `json:"kind" validate:"required,oneof=factory cargo ff carrier wb other"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CounterpartyResponse salida de una contraparte.
type CounterpartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest entrada para crear un producto terminado.
type CreateProductRequest struct {
	Article  string `json:"article" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Category string `json:"category"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string    `json:"id"`
	Article   string    `json:"article"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Size      string    `json:"size,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
