package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo fichas técnicas en memoria. Como el índice parcial en PostgreSQL,
// rechaza una segunda ficha por defecto para el mismo producto.
type RecipeRepo struct{ h handle }

func copyRecipe(r entity.Recipe) *entity.Recipe {
	r.Lines = slices.Clone(r.Lines)
	return &r
}

func hasOtherDefault(st *state, productID, exceptID string) bool {
	for _, r := range st.recipes {
		if r.ID != exceptID && r.IsDefault && r.ProductID == productID {
			return true
		}
	}
	return false
}

func (r *RecipeRepo) Create(_ context.Context, recipe *entity.Recipe) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.recipes[recipe.ID]; ok {
			return domain.ErrDuplicate
		}
		if recipe.IsDefault && recipe.ProductID != "" && hasOtherDefault(st, recipe.ProductID, recipe.ID) {
			return domain.ErrDefaultRecipeExists
		}
		st.recipes[recipe.ID] = *copyRecipe(*recipe)
		st.touch(recipe.ID)
		return nil
	})
}

func (r *RecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	var out *entity.Recipe
	err := r.h.read(func(st *state) error {
		if rc, ok := st.recipes[id]; ok {
			out = copyRecipe(rc)
		}
		return nil
	})
	return out, err
}

// list fichas del producto que cumplan keep, la más reciente primero.
func (r *RecipeRepo) list(productID string, keep func(entity.Recipe) bool) ([]*entity.Recipe, error) {
	var list []*entity.Recipe
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, rc := range st.recipes {
			if rc.ProductID == productID && keep(rc) {
				list = append(list, copyRecipe(rc))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return order[list[i].ID] > order[list[j].ID]
	})
	return list, err
}

func (r *RecipeRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Recipe, error) {
	return r.list(productID, func(entity.Recipe) bool { return true })
}

func (r *RecipeRepo) ListDefaultsByProduct(_ context.Context, productID string) ([]*entity.Recipe, error) {
	return r.list(productID, func(rc entity.Recipe) bool { return rc.IsDefault })
}

func (r *RecipeRepo) ClearDefault(_ context.Context, productID string) error {
	return r.h.write(func(st *state) error {
		for id, rc := range st.recipes {
			if rc.ProductID == productID && rc.IsDefault {
				rc.IsDefault = false
				st.recipes[id] = rc
			}
		}
		return nil
	})
}

func (r *RecipeRepo) SetDefault(_ context.Context, recipeID string) error {
	return r.h.write(func(st *state) error {
		rc, ok := st.recipes[recipeID]
		if !ok {
			return domain.ErrNotFound
		}
		if hasOtherDefault(st, rc.ProductID, rc.ID) {
			return domain.ErrDefaultRecipeExists
		}
		rc.IsDefault = true
		st.recipes[recipeID] = rc
		return nil
	})
}
