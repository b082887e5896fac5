package production

import (
	"testing"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRequirement(t *testing.T) {
	tests := []struct {
		name    string
		lines   []entity.RecipeLine
		planned int
		want    []Need
	}{
		{
			name:    "una línea",
			lines:   []entity.RecipeLine{{MaterialID: "M", QuantityPerUnit: d("10")}},
			planned: 5,
			want:    []Need{{MaterialID: "M", Quantity: d("50")}},
		},
		{
			name: "líneas duplicadas se suman",
			lines: []entity.RecipeLine{
				{MaterialID: "tela", QuantityPerUnit: d("1.25")},
				{MaterialID: "etiqueta", QuantityPerUnit: d("1")},
				{MaterialID: "tela", QuantityPerUnit: d("0.5")},
			},
			planned: 4,
			want: []Need{
				{MaterialID: "tela", Quantity: d("7")},
				{MaterialID: "etiqueta", Quantity: d("4")},
			},
		},
		{
			name:    "ficha vacía",
			planned: 3,
			want:    []Need{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Requirement(tt.lines, tt.planned)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].MaterialID, got[i].MaterialID)
				assert.True(t, tt.want[i].Quantity.Equal(got[i].Quantity), "%s: got %s", got[i].MaterialID, got[i].Quantity)
			}
		})
	}
}

func TestShortages_ListaTodos(t *testing.T) {
	needs := []Need{
		{MaterialID: "M", Quantity: d("50")},
		{MaterialID: "N", Quantity: d("2")},
		{MaterialID: "K", Quantity: d("1")},
	}
	balance := map[string]decimal.Decimal{"M": d("30"), "K": d("1")}

	got := Shortages(needs, balance)
	require.Len(t, got, 2)
	assert.Equal(t, "M", got[0].MaterialID)
	assert.True(t, d("50").Equal(got[0].Required))
	assert.True(t, d("30").Equal(got[0].Available))
	assert.Equal(t, "N", got[1].MaterialID)
	assert.True(t, got[1].Available.IsZero())
}

func TestShortages_SinFaltantes(t *testing.T) {
	got := Shortages([]Need{{MaterialID: "M", Quantity: d("50")}}, map[string]decimal.Decimal{"M": d("60")})
	assert.Empty(t, got)
}
