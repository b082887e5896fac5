package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRecipe_FichaExplicita(t *testing.T) {
	f := newFixture(t, 5)
	f.recipe(t, "M", "10", true)
	override := f.recipe(t, "M", "3", false)
	batch := f.newBatch(t, 5, override.ID)

	resolver := production.NewRecipeResolver(f.store.Recipes(), f.store.Products())
	got, err := resolver.ResolveRecipe(f.ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, override.ID, got.ID)
}

func TestResolveRecipe_UnicaPorDefecto(t *testing.T) {
	f := newFixture(t, 5)
	def := f.recipe(t, "M", "10", true)
	f.recipe(t, "M", "1", false)

	resolver := production.NewRecipeResolver(f.store.Recipes(), f.store.Products())
	got, err := resolver.ResolveRecipe(f.ctx, f.batch)
	require.NoError(t, err)
	assert.Equal(t, def.ID, got.ID)
	require.Len(t, got.Lines, 1)
}

func TestResolveRecipe_SinFichas(t *testing.T) {
	f := newFixture(t, 5)
	f.recipe(t, "M", "1", false)

	resolver := production.NewRecipeResolver(f.store.Recipes(), f.store.Products())
	_, err := resolver.ResolveRecipe(f.ctx, f.batch)

	var missing *domain.MissingRecipeError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, f.product.ID, missing.ProductID)
	assert.Equal(t, "HD-001", missing.Article)
}

func TestResolveRecipe_FichaExplicitaInexistente(t *testing.T) {
	f := newFixture(t, 5)
	batch := &entity.ProductionBatch{ID: "b", ProductID: f.product.ID, PlannedQuantity: 1, RecipeID: "no-existe"}

	resolver := production.NewRecipeResolver(f.store.Recipes(), f.store.Products())
	_, err := resolver.ResolveRecipe(f.ctx, batch)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// duplicatedDefaults simula datos que violan la unicidad de la ficha por defecto.
type duplicatedDefaults struct {
	repository.RecipeRepository
	defaults []*entity.Recipe
}

func (r duplicatedDefaults) ListDefaultsByProduct(context.Context, string) ([]*entity.Recipe, error) {
	return r.defaults, nil
}

func TestResolveRecipe_VariasPorDefecto_GanaLaMasReciente(t *testing.T) {
	f := newFixture(t, 5)
	repo := duplicatedDefaults{
		RecipeRepository: f.store.Recipes(),
		defaults:         []*entity.Recipe{{ID: "nueva", IsDefault: true}, {ID: "vieja", IsDefault: true}},
	}

	resolver := production.NewRecipeResolver(repo, f.store.Products())
	got, err := resolver.ResolveRecipe(f.ctx, f.batch)
	require.NoError(t, err)
	assert.Equal(t, "nueva", got.ID)
}
