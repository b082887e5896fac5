package inventory

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ActLine línea del acta con los datos del material resueltos.
type ActLine struct {
	MaterialID   string
	MaterialName string
	Unit         string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	Amount       decimal.Decimal
}

// EntryAct datos de un asiento listos para imprimir (acta de descargo, entrada o traslado).
type EntryAct struct {
	Entry    *entity.LedgerEntry
	FromName string
	ToName   string
	Lines    []ActLine
	Total    decimal.Decimal
}

// ActPDFGenerator puerto de salida para generar el PDF del acta.
type ActPDFGenerator interface {
	GenerateActPDF(ctx context.Context, act *EntryAct) ([]byte, error)
}

// ActUseCase arma el acta de un asiento y la entrega como PDF.
type ActUseCase struct {
	ledgerRepo   repository.LedgerRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
	pdf          ActPDFGenerator
}

// NewActUseCase construye el caso de uso.
func NewActUseCase(
	ledgerRepo repository.LedgerRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
	pdf ActPDFGenerator,
) *ActUseCase {
	return &ActUseCase{
		ledgerRepo:   ledgerRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
		pdf:          pdf,
	}
}

// BuildAct resuelve nombres de ubicaciones y materiales del asiento.
func (uc *ActUseCase) BuildAct(ctx context.Context, entryID string) (*EntryAct, error) {
	entry, err := uc.ledgerRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	act := &EntryAct{Entry: entry, Total: entry.TotalCost().Round(inventory.MoneyScale)}
	if act.FromName, err = uc.locationName(ctx, entry.FromLocationID); err != nil {
		return nil, err
	}
	if act.ToName, err = uc.locationName(ctx, entry.ToLocationID); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entry.Lines))
	for _, l := range entry.Lines {
		ids = append(ids, l.MaterialID)
	}
	materials, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range entry.Lines {
		line := ActLine{
			MaterialID:   l.MaterialID,
			MaterialName: l.MaterialID,
			Quantity:     l.Quantity,
			UnitCost:     l.UnitCost,
			Amount:       l.Amount().Round(inventory.MoneyScale),
		}
		if m := materials[l.MaterialID]; m != nil {
			line.MaterialName = m.Name
			line.Unit = m.Unit
		}
		act.Lines = append(act.Lines, line)
	}
	return act, nil
}

// ActPDF acta del asiento en PDF.
func (uc *ActUseCase) ActPDF(ctx context.Context, entryID string) ([]byte, error) {
	act, err := uc.BuildAct(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateActPDF(ctx, act)
}

func (uc *ActUseCase) locationName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	loc, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if loc == nil {
		return id, nil
	}
	return loc.Name, nil
}
