package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/production"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Resultados de un intento de descargo (etiqueta de métricas y logs).
const (
	OutcomeOK                = "ok"
	OutcomeInvalidBatch      = "invalid_batch"
	OutcomeMissingRecipe     = "missing_recipe"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeMissingCost       = "missing_cost"
	OutcomeAlreadyWrittenOff = "already_written_off"
	OutcomeNotFound          = "not_found"
	OutcomeError             = "error"
)

// Outcome clasifica el error de un descargo.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidBatch):
		return OutcomeInvalidBatch
	case errors.Is(err, domain.ErrMissingRecipe):
		return OutcomeMissingRecipe
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errors.Is(err, domain.ErrMissingCost):
		return OutcomeMissingCost
	case errors.Is(err, domain.ErrAlreadyWrittenOff):
		return OutcomeAlreadyWrittenOff
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// WriteOffUseCase descarga los materiales de una partida según su ficha técnica y
// registra en la partida el costo de materiales.
type WriteOffUseCase struct {
	txRunner     WriteOffTxRunner
	batchRepo    repository.BatchRepository
	locationRepo repository.LocationRepository
	materialRepo repository.MaterialRepository
	resolver     *RecipeResolver
	observer     WriteOffObserver
	log          *logger.Logger
}

// NewWriteOffUseCase construye el caso de uso. observer y log pueden ser nil.
func NewWriteOffUseCase(
	txRunner WriteOffTxRunner,
	batchRepo repository.BatchRepository,
	locationRepo repository.LocationRepository,
	materialRepo repository.MaterialRepository,
	resolver *RecipeResolver,
	observer WriteOffObserver,
	log *logger.Logger,
) *WriteOffUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WriteOffUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		locationRepo: locationRepo,
		materialRepo: materialRepo,
		resolver:     resolver,
		observer:     observer,
		log:          log,
	}
}

// WriteOff descarga los materiales de la partida desde la ubicación de origen.
//
// La validación (cantidad planificada, ficha técnica, requerimiento) no modifica nada. El saldo se lee
// dentro de la transacción con lock por ubicación; faltantes, precio ausente o descargo previo hacen
// rollback completo: no queda asiento ni costo en la partida.
func (uc *WriteOffUseCase) WriteOff(ctx context.Context, batchID, locationID string) (*entity.LedgerEntry, error) {
	start := time.Now()
	entry, err := uc.writeOff(ctx, batchID, locationID)
	outcome := Outcome(err)
	uc.observer.ObserveWriteOff(outcome, time.Since(start))

	var ev *zerolog.Event
	switch outcome {
	case OutcomeOK:
		ev = uc.log.Info()
	case OutcomeError:
		ev = uc.log.Error().Err(err)
	default:
		ev = uc.log.Warn().Str("reason", err.Error())
	}
	ev = ev.Str("batch_id", batchID).Str("location_id", locationID).Str("outcome", outcome)
	if entry != nil {
		ev = ev.Str("entry_id", entry.ID).Str("total_cost", entry.TotalCost().StringFixed(inventory.MoneyScale))
	}
	ev.Msg("descargo por ficha técnica")
	return entry, err
}

func (uc *WriteOffUseCase) writeOff(ctx context.Context, batchID, locationID string) (*entity.LedgerEntry, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.PlannedQuantity <= 0 {
		return nil, domain.ErrInvalidBatch
	}
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	recipe, err := uc.resolver.ResolveRecipe(ctx, batch)
	if err != nil {
		return nil, err
	}
	needs := production.Requirement(recipe.Lines, batch.PlannedQuantity)
	if len(needs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	ids := make([]string, 0, len(needs))
	for _, n := range needs {
		ids = append(ids, n.MaterialID)
	}
	materials, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	materialName := func(id string) string {
		if m := materials[id]; m != nil {
			return m.Name
		}
		return ""
	}

	var entry *entity.LedgerEntry
	err = uc.txRunner.RunWriteOff(ctx, locationID, func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		locked, err := batchRepo.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		existing, err := ledgerRepo.FindWriteOffByBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.AlreadyWrittenOffError{BatchID: batchID, EntryID: existing.ID}
		}

		balance, err := ledgerRepo.BalanceByLocation(ctx, locationID)
		if err != nil {
			return err
		}
		if shortages := production.Shortages(needs, balance); len(shortages) > 0 {
			for i := range shortages {
				shortages[i].MaterialName = materialName(shortages[i].MaterialID)
			}
			return &domain.InsufficientStockError{LocationID: locationID, Shortages: shortages}
		}

		now := time.Now()
		e := &entity.LedgerEntry{
			ID:             uuid.New().String(),
			Kind:           entity.LedgerKindWriteOff,
			FromLocationID: locationID,
			BatchID:        batchID,
			Comment:        fmt.Sprintf("Descargo por ficha técnica de la partida %s", batchID),
			CreatedAt:      now,
		}
		total := decimal.Zero
		for _, n := range needs {
			price, ok, err := purchaseRepo.LastUnitPrice(ctx, n.MaterialID)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.MissingCostError{MaterialID: n.MaterialID, MaterialName: materialName(n.MaterialID)}
			}
			line := entity.LedgerLine{
				ID:         uuid.New().String(),
				EntryID:    e.ID,
				MaterialID: n.MaterialID,
				Quantity:   n.Quantity,
				UnitCost:   price,
			}
			e.Lines = append(e.Lines, line)
			total = total.Add(line.Amount())
		}
		if err := ledgerRepo.Create(ctx, e); err != nil {
			return err
		}
		costTotal, perUnit := inventory.MaterialCost(total, locked.PlannedQuantity)
		if err := batchRepo.UpdateMaterialCost(ctx, batchID, costTotal, perUnit); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
