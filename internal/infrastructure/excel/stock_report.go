package excel

import (
	"bytes"
	"fmt"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
	"github.com/xuri/excelize/v2"
)

var _ stock.BalanceSheetWriter = StockBalanceWriter{}

// StockBalanceWriter reporte de saldos de mercadería como .xlsx, una fila por partida y ubicación.
type StockBalanceWriter struct{}

var stockHeader = []any{"Artículo", "Producto", "Talla", "Color", "Ubicación", "Saldo", "batch_id", "order_id"}

// StockReport fila de total al final; con filtro de artículo la hoja lleva su nombre.
func (StockBalanceWriter) StockReport(report *dto.StockBalanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if report.Filter.Article != "" {
		if err := f.SetSheetName(sheet, sheetName(report.Filter.Article)); err != nil {
			return nil, fmt.Errorf("nombre de hoja: %w", err)
		}
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo encabezado: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &stockHeader); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", bold); err != nil {
		return nil, fmt.Errorf("estilo encabezado: %w", err)
	}

	for i, r := range report.Rows {
		row := []any{r.Article, r.Name, r.Size, r.Color, r.LocationName, r.Balance, r.BatchID, r.OrderID}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	totalCell, err := excelize.CoordinatesToCellName(5, len(report.Rows)+2)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, totalCell, &[]any{"Total", report.Total}); err != nil {
		return nil, fmt.Errorf("total: %w", err)
	}
	_ = f.SetCellStyle(sheet, totalCell, totalCell, bold)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "E", "E", 24)
	_ = f.SetColWidth(sheet, "G", "H", 38)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
