package production_test

import (
	"testing"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecipeUseCase(f *fixture) *production.RecipeUseCase {
	s := f.store
	return production.NewRecipeUseCase(s, s.Recipes(), s.Products(), s.Materials())
}

func TestRecipeUseCase_Create(t *testing.T) {
	f := newFixture(t, 5)
	uc := newRecipeUseCase(f)

	got, err := uc.Create(f.ctx, dto.CreateRecipeRequest{
		ProductID: f.product.ID,
		Name:      " Sudadera base ",
		IsDefault: true,
		Lines:     []dto.RecipeLineRequest{{MaterialID: "M", QuantityPerUnit: d("1.23456")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sudadera base", got.Name)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "1.235", got.Lines[0].QuantityPerUnit.StringFixed(3))
}

func TestRecipeUseCase_Create_Validaciones(t *testing.T) {
	f := newFixture(t, 5)
	uc := newRecipeUseCase(f)
	line := []dto.RecipeLineRequest{{MaterialID: "M", QuantityPerUnit: d("1")}}

	tests := []struct {
		name string
		in   dto.CreateRecipeRequest
		want error
	}{
		{"sin nombre", dto.CreateRecipeRequest{ProductID: f.product.ID, Lines: line}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateRecipeRequest{ProductID: f.product.ID, Name: "x"}, domain.ErrInvalidInput},
		{"por defecto sin producto", dto.CreateRecipeRequest{Name: "x", IsDefault: true, Lines: line}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateRecipeRequest{Name: "x", Lines: []dto.RecipeLineRequest{{MaterialID: "M"}}}, domain.ErrInvalidInput},
		{"material inexistente", dto.CreateRecipeRequest{Name: "x", Lines: []dto.RecipeLineRequest{{MaterialID: "Z", QuantityPerUnit: d("1")}}}, domain.ErrNotFound},
		{"producto inexistente", dto.CreateRecipeRequest{ProductID: "nope", Name: "x", Lines: line}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(f.ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecipeUseCase_SegundaPorDefectoRechazada(t *testing.T) {
	f := newFixture(t, 5)
	uc := newRecipeUseCase(f)
	in := dto.CreateRecipeRequest{
		ProductID: f.product.ID, Name: "a", IsDefault: true,
		Lines: []dto.RecipeLineRequest{{MaterialID: "M", QuantityPerUnit: d("1")}},
	}
	_, err := uc.Create(f.ctx, in)
	require.NoError(t, err)

	in.Name = "b"
	_, err = uc.Create(f.ctx, in)
	assert.ErrorIs(t, err, domain.ErrDefaultRecipeExists)
}

func TestRecipeUseCase_SetDefault_CambiaLaPorDefecto(t *testing.T) {
	f := newFixture(t, 5)
	uc := newRecipeUseCase(f)
	old := f.recipe(t, "M", "10", true)
	next := f.recipe(t, "M", "2", false)

	got, err := uc.SetDefault(f.ctx, next.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)

	defaults, err := f.store.Recipes().ListDefaultsByProduct(f.ctx, f.product.ID)
	require.NoError(t, err)
	require.Len(t, defaults, 1)
	assert.Equal(t, next.ID, defaults[0].ID)

	prev, err := uc.GetByID(f.ctx, old.ID)
	require.NoError(t, err)
	assert.False(t, prev.IsDefault)

	_, err = uc.SetDefault(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeUseCase_ListByProduct(t *testing.T) {
	f := newFixture(t, 5)
	uc := newRecipeUseCase(f)
	f.recipe(t, "M", "1", true)
	f.recipe(t, "M", "2", false)

	list, err := uc.ListByProduct(f.ctx, f.product.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
