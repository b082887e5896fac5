package wb

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Campos reconocidos del reporte de stock WB.
const (
	FieldBrand           = "brand"
	FieldSubject         = "subject"
	FieldVendorCode      = "vendor_code"
	FieldNmID            = "nm_id"
	FieldVolume          = "volume"
	FieldBarcode         = "barcode"
	FieldTechSize        = "tech_size"
	FieldInWayToClient   = "in_way_to_client"
	FieldInWayFromClient = "in_way_from_client"
	FieldQuantityFull    = "quantity_full"
	FieldWarehouse       = "warehouse_name"
)

// headerTitles títulos de columna tal como los exporta WB.
var headerTitles = map[string]string{
	"Бренд":                       FieldBrand,
	"Предмет":                     FieldSubject,
	"Артикул продавца":            FieldVendorCode,
	"Артикул WB":                  FieldNmID,
	"Объем, л":                    FieldVolume,
	"Баркод":                      FieldBarcode,
	"Размер вещи":                 FieldTechSize,
	"В пути до получателей":       FieldInWayToClient,
	"В пути возвраты на склад WB": FieldInWayFromClient,
	"Всего находится на складах":  FieldQuantityFull,
	"Склад":                       FieldWarehouse,
}

// requiredFields en el orden en que se reportan si faltan.
var requiredFields = []string{FieldVendorCode, FieldNmID, FieldBarcode}

var fieldTitles = func() map[string]string {
	m := make(map[string]string, len(headerTitles))
	for title, field := range headerTitles {
		m[field] = title
	}
	return m
}()

const (
	headerSearchRows = 5
	minHeaderMatches = 3
)

// normalizeTitle NFC + espacios colapsados: las exportaciones a veces traen la й descompuesta o espacios dobles.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

var normalizedTitles = func() map[string]string {
	m := make(map[string]string, len(headerTitles))
	for title, field := range headerTitles {
		m[normalizeTitle(title)] = field
	}
	return m
}()

// Header fila de encabezados detectada: índice (0-based) en la hoja y columna de cada campo.
type Header struct {
	RowIndex int
	Columns  map[string]int
}

// DetectHeader busca en las primeras 5 filas la primera con al menos 3 títulos conocidos y
// exige las columnas obligatorias (Артикул продавца, Артикул WB, Баркод).
func DetectHeader(rows [][]string) (*Header, error) {
	limit := min(headerSearchRows, len(rows))
	for i := 0; i < limit; i++ {
		cols := make(map[string]int)
		for j, cell := range rows[i] {
			if field, ok := normalizedTitles[normalizeTitle(cell)]; ok {
				if _, dup := cols[field]; !dup {
					cols[field] = j
				}
			}
		}
		if len(cols) < minHeaderMatches {
			continue
		}
		var missing []string
		for _, f := range requiredFields {
			if _, ok := cols[f]; !ok {
				missing = append(missing, fieldTitles[f])
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("faltan columnas obligatorias: %s", strings.Join(missing, ", "))
		}
		return &Header{RowIndex: i, Columns: cols}, nil
	}
	return nil, fmt.Errorf("no se encontraron los encabezados; se esperan al menos: %s, %s, %s",
		fieldTitles[FieldVendorCode], fieldTitles[FieldNmID], fieldTitles[FieldBarcode])
}
