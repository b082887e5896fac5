package stock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

// SupplyUseCase entregas de partidas de un pedido y su aceptación en bodega.
type SupplyUseCase struct {
	txRunner     TxRunner
	supplyRepo   repository.SupplyRepository
	orderRepo    repository.OrderRepository
	batchRepo    repository.BatchRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewSupplyUseCase construye el caso de uso; log nil = sin logs.
func NewSupplyUseCase(
	txRunner TxRunner,
	supplyRepo repository.SupplyRepository,
	orderRepo repository.OrderRepository,
	batchRepo repository.BatchRepository,
	locationRepo repository.LocationRepository,
	log *logger.Logger,
) *SupplyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplyUseCase{
		txRunner:     txRunner,
		supplyRepo:   supplyRepo,
		orderRepo:    orderRepo,
		batchRepo:    batchRepo,
		locationRepo: locationRepo,
		log:          log,
	}
}

// Create registra una entrega en tránsito. Entre todas las entregas del pedido no se envían
// más unidades de una partida que las planificadas.
func (uc *SupplyUseCase) Create(ctx context.Context, orderID string, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	planned := make(map[string]int, len(batches))
	for _, b := range batches {
		planned[b.ID] = b.PlannedQuantity
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	s := &entity.Supply{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Number:    number,
		Date:      date,
		Status:    entity.SupplyStatusInTransit,
		CreatedAt: now,
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.LocationID == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := planned[it.BatchID]; !ok {
			// la partida no es de este pedido
			return nil, domain.ErrInvalidInput
		}
		loc, err := uc.locationRepo.GetByID(ctx, it.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
		s.Items = append(s.Items, entity.SupplyItem{
			ID:         uuid.New().String(),
			SupplyID:   s.ID,
			BatchID:    it.BatchID,
			LocationID: it.LocationID,
			Quantity:   it.Quantity,
		})
	}

	err = uc.txRunner.RunStock(ctx, []string{OrderLock(orderID)}, func(_ repository.StockRepository, supplyRepo repository.SupplyRepository) error {
		shipped, err := supplyRepo.ShippedByBatch(ctx, orderID)
		if err != nil {
			return err
		}
		for batchID, qty := range s.QuantityByBatch() {
			if shipped[batchID]+qty > planned[batchID] {
				return domain.ErrConflict
			}
		}
		return supplyRepo.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return ToSupplyResponse(s, nil), nil
}

// Get entrega por ID.
func (uc *SupplyUseCase) Get(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	s, err := uc.supplyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ToSupplyResponse(s, nil), nil
}

// ListByOrder entregas del pedido por fecha.
func (uc *SupplyUseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.SupplyResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.supplyRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSupplyResponse(s, nil))
	}
	return out, nil
}

// UpdateStatus avanza el estado. Al aceptar, genera una entrada de mercadería por ubicación
// destino en la misma transacción.
func (uc *SupplyUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateSupplyStatusRequest) (*dto.SupplyResponse, error) {
	if !entity.ValidSupplyStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.supplyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	locks := []string{OrderLock(current.OrderID)}
	if in.Status == entity.SupplyStatusAccepted {
		for _, loc := range supplyLocations(current) {
			locks = append(locks, LocationLock(loc))
		}
	}

	var out *entity.Supply
	var incomes []string
	err = uc.txRunner.RunStock(ctx, locks, func(stockRepo repository.StockRepository, supplyRepo repository.SupplyRepository) error {
		s, err := supplyRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !entity.SupplyAdvances(s.Status, in.Status) {
			return domain.ErrConflict
		}
		if err := supplyRepo.UpdateStatus(ctx, id, in.Status); err != nil {
			return err
		}
		s.Status = in.Status
		if in.Status == entity.SupplyStatusAccepted {
			for _, m := range incomeMovements(s) {
				if err := stockRepo.Create(ctx, m); err != nil {
					return err
				}
				incomes = append(incomes, m.ID)
			}
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(incomes) > 0 {
		uc.log.Info().
			Str("supply_id", id).
			Str("order_id", out.OrderID).
			Int("movements", len(incomes)).
			Msg("Entrega aceptada en bodega")
	}
	return ToSupplyResponse(out, incomes), nil
}

// supplyLocations ubicaciones destino en orden de primera aparición.
func supplyLocations(s *entity.Supply) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range s.Items {
		if !seen[it.LocationID] {
			seen[it.LocationID] = true
			out = append(out, it.LocationID)
		}
	}
	return out
}

func incomeMovements(s *entity.Supply) []*entity.StockMovement {
	now := time.Now()
	byLoc := map[string]*entity.StockMovement{}
	var out []*entity.StockMovement
	for _, it := range s.Items {
		m, ok := byLoc[it.LocationID]
		if !ok {
			m = &entity.StockMovement{
				ID:           uuid.New().String(),
				Kind:         entity.StockKindIncome,
				ToLocationID: it.LocationID,
				SupplyID:     s.ID,
				Comment:      "Entrega " + s.Number,
				CreatedAt:    now,
			}
			byLoc[it.LocationID] = m
			out = append(out, m)
		}
		m.Items = append(m.Items, entity.StockMovementItem{
			ID:         uuid.New().String(),
			MovementID: m.ID,
			BatchID:    it.BatchID,
			Quantity:   it.Quantity,
		})
	}
	return out
}

// ToSupplyResponse mapea una entrega a su DTO.
func ToSupplyResponse(s *entity.Supply, incomes []string) *dto.SupplyResponse {
	items := make([]dto.SupplyItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SupplyItemResponse{
			BatchID:    it.BatchID,
			LocationID: it.LocationID,
			Quantity:   it.Quantity,
		})
	}
	return &dto.SupplyResponse{
		ID:                s.ID,
		OrderID:           s.OrderID,
		Number:            s.Number,
		Date:              s.Date,
		Status:            s.Status,
		Items:             items,
		IncomeMovementIDs: incomes,
		CreatedAt:         s.CreatedAt,
	}
}
