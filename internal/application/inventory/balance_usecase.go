package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BalanceSheetWriter genera el reporte de saldos en formato hoja de cálculo.
type BalanceSheetWriter interface {
	BalanceReport(report *dto.BalanceReport) ([]byte, error)
}

// BalanceUseCase saldos de materiales por ubicación derivados del libro de movimientos.
type BalanceUseCase struct {
	ledgerRepo   repository.LedgerRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
	sheet        BalanceSheetWriter
}

// NewBalanceUseCase construye el caso de uso. sheet puede ser nil si no se exporta a Excel.
func NewBalanceUseCase(
	ledgerRepo repository.LedgerRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
	sheet BalanceSheetWriter,
) *BalanceUseCase {
	return &BalanceUseCase{
		ledgerRepo:   ledgerRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
		sheet:        sheet,
	}
}

// Balance saldo neto por material en la ubicación. Un material ausente tiene saldo cero.
func (uc *BalanceUseCase) Balance(ctx context.Context, locationID string) (map[string]decimal.Decimal, error) {
	return uc.ledgerRepo.BalanceByLocation(ctx, locationID)
}

// Report saldos no nulos de la ubicación con datos del material, ordenados por nombre.
func (uc *BalanceUseCase) Report(ctx context.Context, locationID string) (*dto.BalanceReport, error) {
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	balance, err := uc.ledgerRepo.BalanceByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(balance))
	for id, qty := range balance {
		if !qty.IsZero() {
			ids = append(ids, id)
		}
	}
	materials, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.BalanceRow, 0, len(ids))
	for _, id := range ids {
		row := dto.BalanceRow{MaterialID: id, Name: id, Balance: balance[id]}
		if m := materials[id]; m != nil {
			row.Name = m.Name
			row.Unit = m.Unit
			row.Color = m.Color
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].MaterialID < rows[j].MaterialID
	})
	return &dto.BalanceReport{
		LocationID:   loc.ID,
		LocationName: loc.Name,
		Rows:         rows,
	}, nil
}

// ReportXLSX el mismo reporte como libro de Excel.
func (uc *BalanceUseCase) ReportXLSX(ctx context.Context, locationID string) ([]byte, error) {
	if uc.sheet == nil {
		return nil, domain.ErrInvalidInput
	}
	report, err := uc.Report(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return uc.sheet.BalanceReport(report)
}

// ListEntries asientos de la ubicación, más recientes primero.
func (uc *BalanceUseCase) ListEntries(ctx context.Context, locationID string, limit, offset int) ([]dto.LedgerEntryResponse, error) {
	entries, err := uc.ledgerRepo.ListByLocation(ctx, locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *ToLedgerEntryResponse(e))
	}
	return out, nil
}

// GetEntry asiento por ID con sus líneas.
func (uc *BalanceUseCase) GetEntry(ctx context.Context, id string) (*dto.LedgerEntryResponse, error) {
	e, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return ToLedgerEntryResponse(e), nil
}
