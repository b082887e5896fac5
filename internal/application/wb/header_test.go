package wb_test

import (
	"testing"

	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stockHeader = []string{
	"Бренд", "Предмет", "Артикул продавца", "Артикул WB", "Объем, л", "Баркод",
	"Размер вещи", "В пути до получателей", "В пути возвраты на склад WB", "Всего находится на складах",
}

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantRow int
		wantErr string
	}{
		{
			name:    "primera fila",
			rows:    [][]string{stockHeader},
			wantRow: 0,
		},
		{
			name:    "tras filas de título",
			rows:    [][]string{{"Отчет по остаткам"}, {""}, stockHeader},
			wantRow: 2,
		},
		{
			name:    "espacios y composición distintos",
			rows:    [][]string{{"  Артикул   продавца", "Артикул WB ", "Баркод"}},
			wantRow: 0,
		},
		{
			name:    "falta columna obligatoria",
			rows:    [][]string{{"Бренд", "Предмет", "Артикул продавца", "Артикул WB"}},
			wantErr: "Баркод",
		},
		{
			name:    "encabezado fuera de las primeras cinco filas",
			rows:    [][]string{{}, {}, {}, {}, {}, stockHeader},
			wantErr: "no se encontraron",
		},
		{
			name:    "hoja vacía",
			rows:    nil,
			wantErr: "no se encontraron",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := wb.DetectHeader(tt.rows)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRow, h.RowIndex)
			assert.Contains(t, h.Columns, wb.FieldVendorCode)
			assert.Contains(t, h.Columns, wb.FieldNmID)
			assert.Contains(t, h.Columns, wb.FieldBarcode)
		})
	}
}

func TestDetectHeader_Columnas(t *testing.T) {
	h, err := wb.DetectHeader([][]string{stockHeader})
	require.NoError(t, err)
	assert.Equal(t, 2, h.Columns[wb.FieldVendorCode])
	assert.Equal(t, 3, h.Columns[wb.FieldNmID])
	assert.Equal(t, 5, h.Columns[wb.FieldBarcode])
	assert.Equal(t, 9, h.Columns[wb.FieldQuantityFull])
	assert.NotContains(t, h.Columns, wb.FieldWarehouse)
}
