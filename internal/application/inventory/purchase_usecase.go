package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PurchaseUseCase compras de insumos: fuente del último precio usado para costear descargos.
type PurchaseUseCase struct {
	txRunner         TxRunner
	purchaseRepo     repository.PurchaseRepository
	counterpartyRepo repository.CounterpartyRepository
	materialRepo     repository.MaterialRepository
	locationRepo     repository.LocationRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	counterpartyRepo repository.CounterpartyRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:         txRunner,
		purchaseRepo:     purchaseRepo,
		counterpartyRepo: counterpartyRepo,
		materialRepo:     materialRepo,
		locationRepo:     locationRepo,
	}
}

// CreatePurchase registra la compra; el precio unitario de cada línea es importe / cantidad (4 decimales).
// Con ReceiveLocationID registra en la misma transacción una entrada a esa ubicación con esos precios.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.counterpartyRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.ReceiveLocationID != "" {
		loc, err := uc.locationRepo.GetByID(ctx, in.ReceiveLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	// se valida ya redondeado a la escala de las columnas: 0.0004 queda en cero.
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		qty := it.Quantity.Round(inventory.QuantityScale)
		amount := it.Amount.Round(inventory.MoneyScale)
		if it.MaterialID == "" || !qty.IsPositive() || amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		ids = append(ids, it.MaterialID)
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

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	// la compra se fecha por día; dentro del mismo día manda el orden de registro.
	y, m, dd := date.Date()
	date = time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "RUB"
	}
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Date:       date,
		Currency:   currency,
		Comment:    in.Comment,
		CreatedAt:  now,
	}
	for _, it := range in.Items {
		qty := it.Quantity.Round(inventory.QuantityScale)
		amount := it.Amount.Round(inventory.MoneyScale)
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			MaterialID: it.MaterialID,
			Quantity:   qty,
			Amount:     amount,
			UnitPrice:  inventory.UnitPrice(amount, qty),
		})
	}

	var income *entity.LedgerEntry
	if in.ReceiveLocationID != "" {
		income = &entity.LedgerEntry{
			ID:           uuid.New().String(),
			Kind:         entity.LedgerKindIncome,
			ToLocationID: in.ReceiveLocationID,
			PurchaseID:   purchase.ID,
			Comment:      fmt.Sprintf("Entrada por compra %s", purchase.ID),
			CreatedAt:    now,
		}
		for _, it := range purchase.Items {
			income.Lines = append(income.Lines, entity.LedgerLine{
				ID:         uuid.New().String(),
				EntryID:    income.ID,
				MaterialID: it.MaterialID,
				Quantity:   it.Quantity,
				UnitCost:   it.UnitPrice,
			})
		}
		if err := ValidateMovement(income); err != nil {
			return nil, err
		}
	}

	err = uc.txRunner.Run(ctx, nil, func(
		ledgerRepo repository.LedgerRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		if income != nil {
			return ledgerRepo.Create(ctx, income)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(purchase)
	if income != nil {
		resp.IncomeEntryID = income.ID
	}
	return resp, nil
}

// GetByID obtiene una compra por ID.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// List compras más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.PurchaseResponse], error) {
	list, err := uc.purchaseRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.ListResponse[dto.PurchaseResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// LastUnitPrice último precio de compra del material; ok=false si nunca se compró.
func (uc *PurchaseUseCase) LastUnitPrice(ctx context.Context, materialID string) (decimal.Decimal, bool, error) {
	return uc.purchaseRepo.LastUnitPrice(ctx, materialID)
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			MaterialID: it.MaterialID,
			Quantity:   it.Quantity,
			Amount:     it.Amount,
			UnitPrice:  it.UnitPrice,
		})
	}
	return &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		Date:       p.Date,
		Currency:   p.Currency,
		Comment:    p.Comment,
		Items:      items,
		Total:      p.Total(),
		CreatedAt:  p.CreatedAt,
	}
}
