package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderRepository define el puerto de persistencia para pedidos a fábrica.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
	AddItem(ctx context.Context, item *entity.OrderItem) error
	// ListItems líneas de precio del pedido en orden de registro.
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
}

// BatchRepository define el puerto de persistencia para partidas de producción.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.ProductionBatch) error
	GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea la fila de la partida (SELECT FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ProductionBatch, error)
	UpdateMaterialCost(ctx context.Context, batchID string, total, perUnit decimal.Decimal) error
}
