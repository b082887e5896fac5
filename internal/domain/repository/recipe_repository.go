package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para fichas técnicas y sus líneas.
type RecipeRepository interface {
	// Create persiste la ficha con sus líneas. domain.ErrDefaultRecipeExists si ya hay una por defecto para el producto.
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error)
	// ListDefaultsByProduct fichas por defecto del producto, la más reciente primero.
	ListDefaultsByProduct(ctx context.Context, productID string) ([]*entity.Recipe, error)
	ClearDefault(ctx context.Context, productID string) error
	SetDefault(ctx context.Context, recipeID string) error
}
