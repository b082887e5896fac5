package production

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/finance"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderUseCase pedidos a fábrica y sus partidas de producción.
type OrderUseCase struct {
	txRunner         OrderTxRunner
	orderRepo        repository.OrderRepository
	batchRepo        repository.BatchRepository
	productRepo      repository.ProductRepository
	recipeRepo       repository.RecipeRepository
	counterpartyRepo repository.CounterpartyRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.OrderRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	counterpartyRepo repository.CounterpartyRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:         txRunner,
		orderRepo:        orderRepo,
		batchRepo:        batchRepo,
		productRepo:      productRepo,
		recipeRepo:       recipeRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

// Create crea el pedido con sus partidas. Cada partida exige cantidad planificada > 0;
// la ficha explícita, si se indica, debe existir. Las partidas con precio generan su línea de precio.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" || in.FactoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	factory, err := uc.counterpartyRepo.GetByID(ctx, in.FactoryID)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "RUB"
	}
	rate := decimal.NewFromInt(1)
	if in.ExchangeRate != nil {
		rate = in.ExchangeRate.Round(finance.RateScale)
		if !rate.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		Number:       number,
		Date:         date,
		FactoryID:    in.FactoryID,
		Currency:     currency,
		ExchangeRate: rate,
		Status:       entity.OrderStatusDraft,
		CreatedAt:    now,
	}
	batches := make([]*entity.ProductionBatch, 0, len(in.Batches))
	var items []*entity.OrderItem
	for _, b := range in.Batches {
		if b.PlannedQuantity <= 0 {
			return nil, domain.ErrInvalidBatch
		}
		product, err := uc.productRepo.GetByID(ctx, b.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if b.RecipeID != "" {
			recipe, err := uc.recipeRepo.GetByID(ctx, b.RecipeID)
			if err != nil {
				return nil, err
			}
			if recipe == nil {
				return nil, domain.ErrNotFound
			}
		}
		color, size := b.Color, b.Size
		if color == "" {
			color = product.Color
		}
		if size == "" {
			size = product.Size
		}
		batch := &entity.ProductionBatch{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       b.ProductID,
			Color:           color,
			Size:            size,
			PlannedQuantity: b.PlannedQuantity,
			RecipeID:        b.RecipeID,
			CreatedAt:       now,
		}
		batches = append(batches, batch)
		if b.Price != nil {
			item, err := newOrderItem(order.ID, batch.ID, b.PlannedQuantity, *b.Price, len(items)+1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, batchRepo repository.BatchRepository) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, b := range batches {
			if err := batchRepo.Create(ctx, b); err != nil {
				return err
			}
		}
		for _, it := range items {
			if err := orderRepo.AddItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, batches, items), nil
}

// AddItem agrega una línea de precio a una partida del pedido: importe = cantidad × precio (2 decimales).
func (uc *OrderUseCase) AddItem(ctx context.Context, orderID string, in dto.AddOrderItemRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.OrderID != orderID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := newOrderItem(orderID, batch.ID, in.Quantity, in.Price, len(existing)+1)
	if err != nil {
		return nil, err
	}
	if err := uc.orderRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, orderID)
}

func newOrderItem(orderID, batchID string, quantity int, price decimal.Decimal, position int) (*entity.OrderItem, error) {
	price = price.Round(finance.MoneyScale)
	if quantity <= 0 || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return &entity.OrderItem{
		ID:       uuid.New().String(),
		OrderID:  orderID,
		BatchID:  batchID,
		Quantity: quantity,
		Price:    price,
		Amount:   finance.LineAmount(quantity, price),
		Position: position,
	}, nil
}

// GetByID pedido con sus partidas y líneas de precio.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.orderRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, batches, items), nil
}

// List pedidos, más recientes primero, con líneas y totales (sin partidas).
func (uc *OrderUseCase) List(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.OrderResponse], error) {
	list, err := uc.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		lines, err := uc.orderRepo.ListItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toOrderResponse(o, nil, lines))
	}
	return &dto.ListResponse[dto.OrderResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetBatch partida con sus costos de materiales (nulos antes del descargo).
func (uc *OrderUseCase) GetBatch(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// ListBatches partidas de un pedido.
func (uc *OrderUseCase) ListBatches(ctx context.Context, orderID string) ([]dto.BatchResponse, error) {
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
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	return out, nil
}

// ToBatchResponse mapea una partida a su DTO.
func ToBatchResponse(b *entity.ProductionBatch) dto.BatchResponse {
	resp := dto.BatchResponse{
		ID:              b.ID,
		OrderID:         b.OrderID,
		ProductID:       b.ProductID,
		Color:           b.Color,
		Size:            b.Size,
		PlannedQuantity: b.PlannedQuantity,
		RecipeID:        b.RecipeID,
		CreatedAt:       b.CreatedAt,
	}
	if b.MaterialCostTotal.Valid {
		v := b.MaterialCostTotal.Decimal
		resp.MaterialCostTotal = &v
	}
	if b.MaterialCostPerUnit.Valid {
		v := b.MaterialCostPerUnit.Decimal
		resp.MaterialCostPerUnit = &v
	}
	return resp
}

func toOrderResponse(o *entity.PurchaseOrder, batches []*entity.ProductionBatch, items []*entity.OrderItem) *dto.OrderResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	lines := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.OrderItemResponse{
			ID:       it.ID,
			BatchID:  it.BatchID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Amount:   it.Amount,
		})
	}
	totals := finance.Settle(o, items, nil)
	return &dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		Date:          o.Date,
		FactoryID:     o.FactoryID,
		Currency:      o.Currency,
		ExchangeRate:  o.Rate(),
		Status:        o.Status,
		Batches:       out,
		Items:         lines,
		TotalCurrency: totals.TotalCurrency,
		TotalRUB:      totals.TotalRUB,
		CreatedAt:     o.CreatedAt,
	}
}
