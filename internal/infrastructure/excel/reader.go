package excel

import (
	"fmt"
	"io"

	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/xuri/excelize/v2"
)

var _ wb.SheetReader = SheetReader{}

// SheetReader lee la hoja activa de un libro .xlsx como filas de texto.
type SheetReader struct{}

// Rows todas las filas de la hoja activa; las celdas vacías al final de cada fila se omiten.
func (SheetReader) Rows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	return rows, nil
}
