package entity

import (
	"encoding/json"
	"time"
)

// Origen y estados de un archivo de importación WB.
const (
	ImportSourceWBStocksExcel = "WB_STOCKS_EXCEL"

	ImportStatusParsed  = "PARSED"
	ImportStatusApplied = "APPLIED"
	ImportStatusError   = "ERROR"
)

// ImportFile archivo de stock WB importado.
type ImportFile struct {
	ID         string
	Source     string
	Filename   string
	Status     string
	ErrorLog   string // resumen o motivo del error
	UploadedBy string
	UploadedAt time.Time
}

// ImportRow fila cruda del archivo con sus errores de validación.
type ImportRow struct {
	ID        string
	FileID    string
	RowNumber int
	Raw       json.RawMessage
	Errors    []string
}

// Valid indica si la fila no tiene errores.
func (r *ImportRow) Valid() bool { return len(r.Errors) == 0 }

// WBProduct producto del marketplace identificado por nm_id.
type WBProduct struct {
	ID         string
	NmID       int64
	VendorCode string
	Title      string
	Brand      string
	Subject    string
}

// WBBarcode código de barras (único) de un producto WB.
type WBBarcode struct {
	ID          string
	WBProductID string
	TechSize    string
	Barcode     string
}

// WBStockSnapshot foto de stock de un código de barras al momento de la importación.
type WBStockSnapshot struct {
	ID              string
	FileID          string
	Warehouse       string
	NmID            int64
	VendorCode      string
	Barcode         string
	TechSize        string
	Quantity        int
	InWayToClient   int
	InWayFromClient int
	QuantityFull    int
	LoadedAt        time.Time
}
