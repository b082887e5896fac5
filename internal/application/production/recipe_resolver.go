package production

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// RecipeResolver determina la ficha técnica que rige el consumo de una partida.
type RecipeResolver struct {
	recipeRepo  repository.RecipeRepository
	productRepo repository.ProductRepository
}

// NewRecipeResolver construye el resolvedor.
func NewRecipeResolver(recipeRepo repository.RecipeRepository, productRepo repository.ProductRepository) *RecipeResolver {
	return &RecipeResolver{recipeRepo: recipeRepo, productRepo: productRepo}
}

// ResolveRecipe devuelve la ficha explícita de la partida si la tiene; si no, la ficha por defecto
// del producto (la más reciente si hubiera varias). Sin ficha: *domain.MissingRecipeError con el artículo.
func (r *RecipeResolver) ResolveRecipe(ctx context.Context, batch *entity.ProductionBatch) (*entity.Recipe, error) {
	if batch.RecipeID != "" {
		recipe, err := r.recipeRepo.GetByID(ctx, batch.RecipeID)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			return nil, domain.ErrNotFound
		}
		return recipe, nil
	}

	defaults, err := r.recipeRepo.ListDefaultsByProduct(ctx, batch.ProductID)
	if err != nil {
		return nil, err
	}
	if len(defaults) > 0 {
		return defaults[0], nil
	}

	missing := &domain.MissingRecipeError{ProductID: batch.ProductID}
	product, err := r.productRepo.GetByID(ctx, batch.ProductID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		missing.Article = product.Article
	}
	return nil, missing
}
