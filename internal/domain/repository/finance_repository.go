package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MoneyAccountRepository define el puerto de persistencia para cuentas de dinero.
type MoneyAccountRepository interface {
	Create(ctx context.Context, a *entity.MoneyAccount) error
	GetByID(ctx context.Context, id string) (*entity.MoneyAccount, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MoneyAccount, error)
}

// MoneyCategoryRepository define el puerto de persistencia para partidas de gasto/ingreso.
// Create devuelve domain.ErrDuplicate si el nombre ya existe.
type MoneyCategoryRepository interface {
	Create(ctx context.Context, c *entity.MoneyCategory) error
	GetByID(ctx context.Context, id string) (*entity.MoneyCategory, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MoneyCategory, error)
}

// MoneyFilter filtros opcionales del listado de operaciones.
type MoneyFilter struct {
	AccountID string // origen o destino
	OrderID   string
	Kind      string
}

// MoneyTransactionRepository operaciones de dinero.
type MoneyTransactionRepository interface {
	Create(ctx context.Context, t *entity.MoneyTransaction) error
	GetByID(ctx context.Context, id string) (*entity.MoneyTransaction, error)
	// List operaciones más recientes primero (fecha, luego registro).
	List(ctx context.Context, f MoneyFilter, limit, offset int) ([]*entity.MoneyTransaction, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.MoneyTransaction, error)
	// AccountBalance entradas menos salidas de la cuenta.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
