package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidBatch        = errors.New("partida inválida: la cantidad planificada debe ser positiva")
	ErrMissingRecipe       = errors.New("no hay ficha técnica para el producto")
	ErrMissingCost         = errors.New("el material no tiene precio de compra")
	ErrAlreadyWrittenOff   = errors.New("la partida ya tiene un descargo registrado")
	ErrDefaultRecipeExists = errors.New("el producto ya tiene una ficha técnica por defecto")
)

// MissingRecipeError indica qué producto necesita una ficha técnica.
type MissingRecipeError struct {
	ProductID string
	Article   string
}

func (e *MissingRecipeError) Error() string {
	if e.Article != "" {
		return fmt.Sprintf("no hay ficha técnica para el producto %s (%s)", e.Article, e.ProductID)
	}
	return fmt.Sprintf("no hay ficha técnica para el producto %s", e.ProductID)
}

func (e *MissingRecipeError) Unwrap() error { return ErrMissingRecipe }

// Shortage faltante de un material en una ubicación.
type Shortage struct {
	MaterialID   string
	MaterialName string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

// Missing cantidad que falta para cubrir el requerimiento.
func (s Shortage) Missing() decimal.Decimal {
	return s.Required.Sub(s.Available)
}

// InsufficientStockError lista todos los materiales faltantes, no solo el primero.
type InsufficientStockError struct {
	LocationID string
	Shortages  []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.MaterialName
		if name == "" {
			name = s.MaterialID
		}
		parts = append(parts, fmt.Sprintf("%s: requerido %s, disponible %s", name, s.Required.String(), s.Available.String()))
	}
	return fmt.Sprintf("stock insuficiente en %s: %s", e.LocationID, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// MissingCostError nombra el material sin historial de compras.
type MissingCostError struct {
	MaterialID   string
	MaterialName string
}

func (e *MissingCostError) Error() string {
	if e.MaterialName != "" {
		return fmt.Sprintf("el material %s (%s) no tiene precio de compra", e.MaterialName, e.MaterialID)
	}
	return fmt.Sprintf("el material %s no tiene precio de compra", e.MaterialID)
}

func (e *MissingCostError) Unwrap() error { return ErrMissingCost }

// AlreadyWrittenOffError apunta al descargo existente de la partida.
type AlreadyWrittenOffError struct {
	BatchID string
	EntryID string
}

func (e *AlreadyWrittenOffError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("la partida %s ya tiene un descargo registrado", e.BatchID)
	}
	return fmt.Sprintf("la partida %s ya tiene el descargo %s", e.BatchID, e.EntryID)
}

func (e *AlreadyWrittenOffError) Unwrap() error { return ErrAlreadyWrittenOff }

// GoodsShortage faltante de unidades de una partida en una ubicación.
type GoodsShortage struct {
	BatchID   string
	Article   string
	Required  int
	Available int
}

// InsufficientGoodsError lista todas las partidas sin unidades suficientes en el origen.
type InsufficientGoodsError struct {
	LocationID string
	Shortages  []GoodsShortage
}

func (e *InsufficientGoodsError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.BatchID
		if s.Article != "" {
			name = fmt.Sprintf("%s (%s)", s.Article, s.BatchID)
		}
		parts = append(parts, fmt.Sprintf("%s: requerido %d, disponible %d", name, s.Required, s.Available))
	}
	return fmt.Sprintf("unidades insuficientes en %s: %s", e.LocationID, strings.Join(parts, "; "))
}

func (e *InsufficientGoodsError) Unwrap() error { return ErrInsufficientStock }
