package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// Los GetByID devuelven (nil, nil) cuando el registro no existe.

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Material, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Material, error)
}

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
}

// CounterpartyRepository define el puerto de persistencia para Counterparty.
type CounterpartyRepository interface {
	Create(ctx context.Context, cp *entity.Counterparty) error
	GetByID(ctx context.Context, id string) (*entity.Counterparty, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Counterparty, error)
}

// ProductRepository define el puerto de persistencia para Product.
// Create devuelve domain.ErrDuplicate si el artículo ya existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByArticle(ctx context.Context, article string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
