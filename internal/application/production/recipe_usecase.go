package production

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// RecipeUseCase mantenimiento de fichas técnicas.
type RecipeUseCase struct {
	txRunner     RecipeTxRunner
	recipeRepo   repository.RecipeRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	txRunner RecipeTxRunner,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
) *RecipeUseCase {
	return &RecipeUseCase{
		txRunner:     txRunner,
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
	}
}

// Create crea una ficha con sus líneas. Una segunda ficha por defecto para el mismo producto
// falla con domain.ErrDefaultRecipeExists; para cambiarla usar SetDefault.
func (uc *RecipeUseCase) Create(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.IsDefault && in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}
	ids := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.MaterialID == "" || !l.QuantityPerUnit.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		ids = append(ids, l.MaterialID)
	}
	materials, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if materials[id] == nil {
			return nil, domain.ErrNotFound
		}
	}

	recipe := &entity.Recipe{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Name:      name,
		IsDefault: in.IsDefault,
		CreatedAt: time.Now(),
	}
	for i, l := range in.Lines {
		recipe.Lines = append(recipe.Lines, entity.RecipeLine{
			ID:              uuid.New().String(),
			RecipeID:        recipe.ID,
			MaterialID:      l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit.Round(inventory.QuantityScale),
			Position:        i + 1,
		})
	}
	if err := uc.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// GetByID obtiene una ficha con sus líneas.
func (uc *RecipeUseCase) GetByID(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return toRecipeResponse(recipe), nil
}

// ListByProduct fichas de un producto.
func (uc *RecipeUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.RecipeResponse, error) {
	list, err := uc.recipeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRecipeResponse(r))
	}
	return out, nil
}

// SetDefault marca la ficha como la por defecto de su producto y desmarca la anterior, en una transacción.
func (uc *RecipeUseCase) SetDefault(ctx context.Context, recipeID string) (*dto.RecipeResponse, error) {
	var updated *entity.Recipe
	err := uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		recipe, err := recipeRepo.GetByID(ctx, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		if recipe.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if err := recipeRepo.ClearDefault(ctx, recipe.ProductID); err != nil {
			return err
		}
		if err := recipeRepo.SetDefault(ctx, recipe.ID); err != nil {
			return err
		}
		recipe.IsDefault = true
		updated = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(updated), nil
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.RecipeLineResponse{
			MaterialID:      l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
		})
	}
	return &dto.RecipeResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Name:      r.Name,
		IsDefault: r.IsDefault,
		Lines:     lines,
		CreatedAt: r.CreatedAt,
	}
}
