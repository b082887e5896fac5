package excel

import (
	"bytes"
	"fmt"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/xuri/excelize/v2"
)

var _ inventory.BalanceSheetWriter = BalanceWriter{}

// BalanceWriter genera el reporte de saldos de una ubicación como .xlsx.
type BalanceWriter struct{}

var balanceHeader = []any{"material_id", "Material", "Unidad", "Color", "Saldo"}

// BalanceReport una fila por material con saldo, en el orden del reporte.
func (BalanceWriter) BalanceReport(report *dto.BalanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if report.LocationName != "" {
		if err := f.SetSheetName(sheet, sheetName(report.LocationName)); err != nil {
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
	if err := f.SetSheetRow(sheet, "A1", &balanceHeader); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", bold); err != nil {
		return nil, fmt.Errorf("estilo encabezado: %w", err)
	}

	for i, r := range report.Rows {
		balance, _ := r.Balance.Float64()
		row := []any{r.MaterialID, r.Name, r.Unit, r.Color, balance}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 32)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName nombre de hoja válido para Excel: máximo 31 caracteres, sin []:*?/\.
func sheetName(s string) string {
	out := make([]rune, 0, 31)
	for _, r := range s {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			r = '_'
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	return string(out)
}
