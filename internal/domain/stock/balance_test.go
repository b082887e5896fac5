package stock

import (
	"testing"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func mv(kind, from, to string, items ...entity.StockMovementItem) *entity.StockMovement {
	return &entity.StockMovement{Kind: kind, FromLocationID: from, ToLocationID: to, Items: items}
}

func item(batch string, qty int) entity.StockMovementItem {
	return entity.StockMovementItem{BatchID: batch, Quantity: qty}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name string
		in   []*entity.StockMovement
		want map[Key]int
	}{
		{
			name: "sin movimientos",
			want: map[Key]int{},
		},
		{
			name: "entrada y salida",
			in: []*entity.StockMovement{
				mv(entity.StockKindIncome, "", "ff", item("b1", 10)),
				mv(entity.StockKindOutcome, "ff", "", item("b1", 3)),
			},
			want: map[Key]int{{"b1", "ff"}: 7},
		},
		{
			name: "traslado acredita el destino",
			in: []*entity.StockMovement{
				mv(entity.StockKindIncome, "", "ff", item("b1", 10)),
				mv(entity.StockKindTransfer, "ff", "wb", item("b1", 4)),
			},
			want: map[Key]int{{"b1", "ff"}: 6, {"b1", "wb"}: 4},
		},
		{
			name: "baja a cero se omite",
			in: []*entity.StockMovement{
				mv(entity.StockKindIncome, "", "ff", item("b1", 2)),
				mv(entity.StockKindWriteOff, "ff", "", item("b1", 2)),
			},
			want: map[Key]int{},
		},
		{
			name: "recuento fija el saldo y los movimientos siguientes parten de él",
			in: []*entity.StockMovement{
				mv(entity.StockKindIncome, "", "ff", item("b1", 10), item("b2", 5)),
				mv(entity.StockKindInventory, "", "ff", item("b1", 8)),
				mv(entity.StockKindOutcome, "ff", "", item("b1", 1)),
			},
			want: map[Key]int{{"b1", "ff"}: 7, {"b2", "ff"}: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Balance(tt.in))
		})
	}
}

func TestShortages_TodasLasPartidas(t *testing.T) {
	order, need := Need([]entity.StockMovementItem{item("b1", 3), item("b2", 5), item("b1", 4)})
	assert.Equal(t, []string{"b1", "b2"}, order)
	assert.Equal(t, 7, need["b1"])

	got := Shortages(order, need, map[string]int{"b1": 6, "b2": 5})
	assert.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].BatchID)
	assert.Equal(t, 7, got[0].Required)
	assert.Equal(t, 6, got[0].Available)

	assert.Len(t, Shortages(order, need, nil), 2)
}

func TestAtLocation(t *testing.T) {
	bal := map[Key]int{{"b1", "ff"}: 3, {"b1", "wb"}: 2, {"b2", "ff"}: 1}
	assert.Equal(t, map[string]int{"b1": 3, "b2": 1}, AtLocation(bal, "ff"))
}
