package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseRepository define el puerto de persistencia para compras de insumos.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error)
	// LastUnitPrice precio unitario de la compra más reciente del material
	// (fecha de compra desc, luego creación desc). ok=false si no hay compras.
	LastUnitPrice(ctx context.Context, materialID string) (price decimal.Decimal, ok bool, err error)
}
