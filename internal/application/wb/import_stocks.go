package wb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

// Estados de fila para métricas.
const (
	RowStatusOK    = "ok"
	RowStatusError = "error"
)

// ImportStocksUseCase importa el reporte de stock de WB desde Excel.
type ImportStocksUseCase struct {
	txRunner ImportTxRunner
	repo     repository.WBImportRepository
	reader   SheetReader
	observer ImportObserver
	log      *logger.Logger
}

// NewImportStocksUseCase construye el caso de uso. observer y log pueden ser nil.
func NewImportStocksUseCase(
	txRunner ImportTxRunner,
	repo repository.WBImportRepository,
	reader SheetReader,
	observer ImportObserver,
	log *logger.Logger,
) *ImportStocksUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImportStocksUseCase{txRunner: txRunner, repo: repo, reader: reader, observer: observer, log: log}
}

// ImportStocks lee el libro, detecta encabezados y vuelca cada fila: las válidas actualizan
// producto y código de barras WB y agregan una foto de stock; las inválidas quedan con sus errores.
// Encabezados no reconocidos: el archivo queda en ERROR y se devuelve domain.ErrInvalidInput.
func (uc *ImportStocksUseCase) ImportStocks(ctx context.Context, filename, uploadedBy string, r io.Reader) (*dto.ImportResultResponse, error) {
	rows, err := uc.reader.Rows(r)
	if err != nil {
		return nil, uc.fail(ctx, filename, uploadedBy, fmt.Sprintf("error al leer el archivo: %v", err))
	}
	header, err := DetectHeader(rows)
	if err != nil {
		return nil, uc.fail(ctx, filename, uploadedBy, err.Error())
	}

	file := &entity.ImportFile{
		ID:         uuid.New().String(),
		Source:     entity.ImportSourceWBStocksExcel,
		Filename:   filename,
		Status:     entity.ImportStatusParsed,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now(),
	}
	if err := uc.repo.CreateFile(ctx, file); err != nil {
		return nil, err
	}

	var processed, withErrors int
	err = uc.txRunner.RunImport(ctx, func(repo repository.WBImportRepository) error {
		processed, withErrors = 0, 0
		for i := header.RowIndex + 1; i < len(rows); i++ {
			data, rowErrs := parseRow(rows[i], header.Columns)
			if data.empty() {
				continue
			}
			raw, err := json.Marshal(data.raw())
			if err != nil {
				return fmt.Errorf("raw json fila %d: %w", i+1, err)
			}
			row := &entity.ImportRow{
				ID:        uuid.New().String(),
				FileID:    file.ID,
				RowNumber: i + 1,
				Raw:       raw,
				Errors:    rowErrs,
			}
			if err := repo.CreateRow(ctx, row); err != nil {
				return err
			}
			if !row.Valid() {
				withErrors++
				continue
			}
			if err := applyRow(ctx, repo, file, data); err != nil {
				return err
			}
			processed++
		}
		file.Status = entity.ImportStatusApplied
		if withErrors > 0 {
			file.ErrorLog = fmt.Sprintf("Procesadas %d filas, %d con errores", processed, withErrors)
		} else {
			file.ErrorLog = fmt.Sprintf("Procesadas %d filas", processed)
		}
		return repo.UpdateFile(ctx, file)
	})
	if err != nil {
		file.Status = entity.ImportStatusError
		file.ErrorLog = fmt.Sprintf("error al procesar el archivo: %v", err)
		if uerr := uc.repo.UpdateFile(ctx, file); uerr != nil {
			uc.log.Error().Err(uerr).Str("file_id", file.ID).Msg("marcar importación WB con error")
		}
		uc.log.Error().Err(err).Str("file", filename).Msg("importación WB")
		return nil, err
	}

	// las filas cuentan solo si la transacción se confirmó.
	uc.observeRows(RowStatusOK, processed)
	uc.observeRows(RowStatusError, withErrors)
	uc.log.Info().
		Str("file_id", file.ID).
		Str("file", filename).
		Int("processed", processed).
		Int("with_errors", withErrors).
		Msg("importación WB aplicada")
	return &dto.ImportResultResponse{
		FileID:     file.ID,
		Filename:   file.Filename,
		Status:     file.Status,
		Summary:    file.ErrorLog,
		Processed:  processed,
		WithErrors: withErrors,
		UploadedAt: file.UploadedAt,
	}, nil
}

func (uc *ImportStocksUseCase) observeRows(status string, n int) {
	for range n {
		uc.observer.ObserveImportRow(status)
	}
}

// fail registra el archivo en ERROR con el motivo y devuelve el error de entrada inválida.
func (uc *ImportStocksUseCase) fail(ctx context.Context, filename, uploadedBy, reason string) error {
	file := &entity.ImportFile{
		ID:         uuid.New().String(),
		Source:     entity.ImportSourceWBStocksExcel,
		Filename:   filename,
		Status:     entity.ImportStatusError,
		ErrorLog:   reason,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now(),
	}
	if err := uc.repo.CreateFile(ctx, file); err != nil {
		uc.log.Error().Err(err).Str("file", filename).Msg("registrar importación WB con error")
	}
	uc.log.Warn().Str("file", filename).Str("reason", reason).Msg("importación WB rechazada")
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, reason)
}

func applyRow(ctx context.Context, repo repository.WBImportRepository, file *entity.ImportFile, data rowData) error {
	product := &entity.WBProduct{
		ID:         uuid.New().String(),
		NmID:       data.nmID,
		VendorCode: data.vendorCode,
		Brand:      data.brand,
		Subject:    data.subject,
	}
	if err := repo.UpsertProduct(ctx, product); err != nil {
		return err
	}
	barcode := &entity.WBBarcode{
		ID:          uuid.New().String(),
		WBProductID: product.ID,
		TechSize:    data.techSize,
		Barcode:     data.barcode,
	}
	if err := repo.UpsertBarcode(ctx, barcode); err != nil {
		return err
	}
	// El reporte no trae stock disponible aparte: quantity = quantity_full.
	return repo.CreateSnapshot(ctx, &entity.WBStockSnapshot{
		ID:              uuid.New().String(),
		FileID:          file.ID,
		Warehouse:       data.warehouse,
		NmID:            data.nmID,
		VendorCode:      data.vendorCode,
		Barcode:         data.barcode,
		TechSize:        data.techSize,
		Quantity:        data.quantityFull,
		InWayToClient:   data.inWayToClient,
		InWayFromClient: data.inWayFromClient,
		QuantityFull:    data.quantityFull,
		LoadedAt:        file.UploadedAt,
	})
}

// rowData fila tipada; present indica qué columnas existen en el archivo.
type rowData struct {
	present         map[string]bool
	brand           string
	subject         string
	vendorCode      string
	nmID            int64
	volume          *float64
	barcode         string
	techSize        string
	inWayToClient   int
	inWayFromClient int
	quantityFull    int
	warehouse       string
}

func (d rowData) empty() bool {
	return d.brand == "" && d.subject == "" && d.vendorCode == "" && d.nmID == 0 &&
		d.volume == nil && d.barcode == "" && d.techSize == "" && d.warehouse == "" &&
		d.inWayToClient == 0 && d.inWayFromClient == 0 && d.quantityFull == 0
}

// raw contenido de la fila para ImportRow.Raw, solo con las columnas presentes.
func (d rowData) raw() map[string]any {
	all := map[string]any{
		FieldBrand:           d.brand,
		FieldSubject:         d.subject,
		FieldVendorCode:      d.vendorCode,
		FieldNmID:            d.nmID,
		FieldVolume:          d.volume,
		FieldBarcode:         d.barcode,
		FieldTechSize:        d.techSize,
		FieldInWayToClient:   d.inWayToClient,
		FieldInWayFromClient: d.inWayFromClient,
		FieldQuantityFull:    d.quantityFull,
		FieldWarehouse:       d.warehouse,
	}
	out := make(map[string]any, len(d.present))
	for f := range d.present {
		out[f] = all[f]
	}
	return out
}

func parseRow(cells []string, cols map[string]int) (rowData, []string) {
	d := rowData{present: make(map[string]bool, len(cols))}
	cell := func(field string) string {
		idx, ok := cols[field]
		if !ok {
			return ""
		}
		d.present[field] = true
		if idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	d.brand = cell(FieldBrand)
	d.subject = cell(FieldSubject)
	d.vendorCode = cell(FieldVendorCode)
	d.nmID = int64(parseInt(cell(FieldNmID)))
	if v := cell(FieldVolume); v != "" {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err == nil {
			d.volume = &f
		}
	}
	d.barcode = cell(FieldBarcode)
	d.techSize = cell(FieldTechSize)
	d.inWayToClient = parseInt(cell(FieldInWayToClient))
	d.inWayFromClient = parseInt(cell(FieldInWayFromClient))
	d.quantityFull = parseInt(cell(FieldQuantityFull))
	d.warehouse = cell(FieldWarehouse)

	var errs []string
	if d.nmID <= 0 {
		errs = append(errs, "nm_id (Артикул WB) faltante o inválido")
	}
	if d.vendorCode == "" {
		errs = append(errs, "vendor_code (Артикул продавца) faltante")
	}
	if d.barcode == "" {
		errs = append(errs, "barcode (Баркод) faltante")
	}
	return d, errs
}

// parseInt entero desde texto de celda ("12", "12.0", "12,0"); vacío o inválido = 0.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return int(f)
}
