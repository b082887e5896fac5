package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerRepository libro de movimientos append-only: no hay Update ni Delete.
type LedgerRepository interface {
	// Create persiste el asiento y sus líneas. domain.ErrAlreadyWrittenOff si la partida ya tiene descargo.
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// ListByLocation asientos que entran o salen de la ubicación, más recientes primero.
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.LedgerEntry, error)
	// FindWriteOffByBatch descargo ya registrado de la partida, nil si no hay.
	FindWriteOffByBatch(ctx context.Context, batchID string) (*entity.LedgerEntry, error)
	// BalanceByLocation saldo neto (entradas − salidas) por material. Sin movimientos = mapa vacío.
	BalanceByLocation(ctx context.Context, locationID string) (map[string]decimal.Decimal, error)
}
