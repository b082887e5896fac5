package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/production"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// RecordMovementUseCase registra entradas y traslados manuales en el libro de movimientos.
// Los descargos por ficha técnica van por production.WriteOffUseCase.
type RecordMovementUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
	}
}

// ValidateMovement reglas de tipo y ubicaciones: entrada solo destino, descargo solo origen,
// traslado ambos y distintos. Toda línea con cantidad positiva y costo no negativo.
func ValidateMovement(entry *entity.LedgerEntry) error {
	switch entry.Kind {
	case entity.LedgerKindIncome:
		if entry.ToLocationID == "" || entry.FromLocationID != "" {
			return domain.ErrInvalidInput
		}
	case entity.LedgerKindWriteOff:
		if entry.FromLocationID == "" || entry.ToLocationID != "" {
			return domain.ErrInvalidInput
		}
	case entity.LedgerKindTransfer:
		if entry.FromLocationID == "" || entry.ToLocationID == "" || entry.FromLocationID == entry.ToLocationID {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if len(entry.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range entry.Lines {
		if l.MaterialID == "" || !l.Quantity.IsPositive() || l.UnitCost.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// RecordMovement valida y persiste un movimiento de entrada o traslado.
// Sin costo unitario explícito se usa el último precio de compra del material (cero si no hay compras).
// Un traslado verifica el saldo del origen bajo el mismo lock por ubicación que el descargo.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in dto.RecordMovementRequest) (*dto.LedgerEntryResponse, error) {
	if in.Kind != entity.LedgerKindIncome && in.Kind != entity.LedgerKindTransfer {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:             uuid.New().String(),
		Kind:           in.Kind,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Comment:        in.Comment,
		CreatedAt:      now,
	}
	explicitCost := make([]bool, len(in.Lines))
	for i, l := range in.Lines {
		line := entity.LedgerLine{
			ID:         uuid.New().String(),
			EntryID:    entry.ID,
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity.Round(inventory.QuantityScale),
		}
		if l.UnitCost != nil {
			line.UnitCost = *l.UnitCost
			explicitCost[i] = true
		}
		entry.Lines = append(entry.Lines, line)
	}
	if err := ValidateMovement(entry); err != nil {
		return nil, err
	}

	for _, locID := range []string{entry.FromLocationID, entry.ToLocationID} {
		if locID == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(ctx, locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}
	ids := make([]string, 0, len(entry.Lines))
	for _, l := range entry.Lines {
		ids = append(ids, l.MaterialID)
	}
	materials, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if materials[id] == nil {
			return nil, domain.ErrNotFound
		}
	}

	var locks []string
	if entry.Kind == entity.LedgerKindTransfer {
		locks = []string{entry.FromLocationID}
	}
	err = uc.txRunner.Run(ctx, locks, func(
		ledgerRepo repository.LedgerRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		for i := range entry.Lines {
			if explicitCost[i] {
				continue
			}
			price, ok, err := purchaseRepo.LastUnitPrice(ctx, entry.Lines[i].MaterialID)
			if err != nil {
				return err
			}
			if ok {
				entry.Lines[i].UnitCost = price
			}
		}
		if entry.Kind == entity.LedgerKindTransfer {
			balance, err := ledgerRepo.BalanceByLocation(ctx, entry.FromLocationID)
			if err != nil {
				return err
			}
			needs := make([]production.Need, 0, len(entry.Lines))
			for _, l := range entry.Lines {
				needs = append(needs, production.Need{MaterialID: l.MaterialID, Quantity: l.Quantity})
			}
			if shortages := production.Shortages(production.Aggregate(needs), balance); len(shortages) > 0 {
				for i := range shortages {
					shortages[i].MaterialName = materials[shortages[i].MaterialID].Name
				}
				return &domain.InsufficientStockError{LocationID: entry.FromLocationID, Shortages: shortages}
			}
		}
		return ledgerRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return ToLedgerEntryResponse(entry), nil
}

// ToLedgerEntryResponse mapea un asiento a su DTO.
func ToLedgerEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	if e == nil {
		return nil
	}
	lines := make([]dto.LedgerLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, dto.LedgerLineResponse{
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
			Amount:     l.Amount().Round(inventory.MoneyScale),
		})
	}
	return &dto.LedgerEntryResponse{
		ID:             e.ID,
		Kind:           e.Kind,
		FromLocationID: e.FromLocationID,
		ToLocationID:   e.ToLocationID,
		PurchaseID:     e.PurchaseID,
		BatchID:        e.BatchID,
		Comment:        e.Comment,
		Lines:          lines,
		TotalCost:      e.TotalCost().Round(inventory.MoneyScale),
		CreatedAt:      e.CreatedAt,
	}
}
