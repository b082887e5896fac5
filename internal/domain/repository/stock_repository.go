package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// StockRepository documentos de movimiento de mercadería: append-only como el libro de materiales.
type StockRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List documentos más recientes primero.
	List(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error)
	// ListForBalance documentos que tocan la ubicación ("" = todos) en orden de creación.
	ListForBalance(ctx context.Context, locationID string) ([]*entity.StockMovement, error)
}

// SupplyRepository entregas de pedidos con sus líneas.
type SupplyRepository interface {
	Create(ctx context.Context, s *entity.Supply) error
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	// GetForUpdate bloquea la entrega dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Supply, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Supply, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ShippedByBatch unidades por partida en todas las entregas del pedido.
	ShippedByBatch(ctx context.Context, orderID string) (map[string]int, error)
}
