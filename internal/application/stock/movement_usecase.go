package stock

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	goods "github.com/jhoicas/Atelier-api/internal/domain/stock"
)

// MovementUseCase movimientos de mercadería terminada y su reporte de saldos.
type MovementUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	sheet        BalanceSheetWriter
}

// NewMovementUseCase construye el caso de uso. sheet puede ser nil si no se exporta a Excel.
func NewMovementUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	sheet BalanceSheetWriter,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		stockRepo:    stockRepo,
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		sheet:        sheet,
	}
}

// ValidateMovement reglas de tipo y ubicaciones: entrada y recuento solo destino, salida y baja
// solo origen, traslado ambos y distintos. Cantidades positivas; el recuento admite cero.
func ValidateMovement(m *entity.StockMovement) error {
	switch m.Kind {
	case entity.StockKindIncome, entity.StockKindInventory:
		if m.ToLocationID == "" || m.FromLocationID != "" {
			return domain.ErrInvalidInput
		}
	case entity.StockKindOutcome, entity.StockKindWriteOff:
		if m.FromLocationID == "" || m.ToLocationID != "" {
			return domain.ErrInvalidInput
		}
	case entity.StockKindTransfer:
		if m.FromLocationID == "" || m.ToLocationID == "" || m.FromLocationID == m.ToLocationID {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if len(m.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range m.Items {
		if it.BatchID == "" || it.Quantity < 0 || (it.Quantity == 0 && m.Kind != entity.StockKindInventory) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// RecordMovement valida y registra un documento. Salida, baja y traslado verifican el saldo
// del origen bajo lock de la ubicación y listan todas las partidas faltantes.
func (uc *MovementUseCase) RecordMovement(ctx context.Context, in dto.RecordStockMovementRequest) (*dto.StockMovementResponse, error) {
	m := &entity.StockMovement{
		ID:             uuid.New().String(),
		Kind:           in.Kind,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Comment:        in.Comment,
		CreatedAt:      time.Now(),
	}
	for _, it := range in.Items {
		m.Items = append(m.Items, entity.StockMovementItem{
			ID:         uuid.New().String(),
			MovementID: m.ID,
			BatchID:    it.BatchID,
			Quantity:   it.Quantity,
		})
	}
	if err := ValidateMovement(m); err != nil {
		return nil, err
	}
	if err := uc.requireLocations(ctx, m.FromLocationID, m.ToLocationID); err != nil {
		return nil, err
	}
	for _, it := range m.Items {
		b, err := uc.batchRepo.GetByID(ctx, it.BatchID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.ErrNotFound
		}
	}

	locks := []string{LocationLock(m.ToLocationID)}
	if m.Takes() {
		locks = []string{LocationLock(m.FromLocationID)}
	}
	err := uc.txRunner.RunStock(ctx, locks, func(stockRepo repository.StockRepository, _ repository.SupplyRepository) error {
		if m.Takes() {
			if err := uc.checkAvailable(ctx, stockRepo, m); err != nil {
				return err
			}
		}
		return stockRepo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

func (uc *MovementUseCase) checkAvailable(ctx context.Context, stockRepo repository.StockRepository, m *entity.StockMovement) error {
	movements, err := stockRepo.ListForBalance(ctx, m.FromLocationID)
	if err != nil {
		return err
	}
	available := goods.AtLocation(goods.Balance(movements), m.FromLocationID)
	order, need := goods.Need(m.Items)
	shortages := goods.Shortages(order, need, available)
	if len(shortages) == 0 {
		return nil
	}
	for i := range shortages {
		if a, err := uc.article(ctx, shortages[i].BatchID); err == nil {
			shortages[i].Article = a
		}
	}
	return &domain.InsufficientGoodsError{LocationID: m.FromLocationID, Shortages: shortages}
}

func (uc *MovementUseCase) article(ctx context.Context, batchID string) (string, error) {
	b, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil || b == nil {
		return "", err
	}
	p, err := uc.productRepo.GetByID(ctx, b.ProductID)
	if err != nil || p == nil {
		return "", err
	}
	return p.Article, nil
}

func (uc *MovementUseCase) requireLocations(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// GetMovement documento por ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*dto.StockMovementResponse, error) {
	m, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return ToMovementResponse(m), nil
}

// ListMovements documentos más recientes primero.
func (uc *MovementUseCase) ListMovements(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.StockMovementResponse], error) {
	list, err := uc.stockRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.ListResponse[dto.StockMovementResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Balance saldos positivos por partida y ubicación, filtrables por artículo (contiene, sin
// distinguir mayúsculas) y ubicación. Orden: artículo, talla, color, ubicación.
func (uc *MovementUseCase) Balance(ctx context.Context, f dto.StockBalanceFilter) (*dto.StockBalanceReport, error) {
	if f.LocationID != "" {
		if err := uc.requireLocations(ctx, f.LocationID); err != nil {
			return nil, err
		}
	}
	movements, err := uc.stockRepo.ListForBalance(ctx, f.LocationID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(f.Article))

	batches := map[string]*entity.ProductionBatch{}
	products := map[string]*entity.Product{}
	locations := map[string]*entity.Location{}
	report := &dto.StockBalanceReport{Filter: f, Rows: []dto.StockBalanceRow{}}
	for key, qty := range goods.Balance(movements) {
		if qty <= 0 || (f.LocationID != "" && key.LocationID != f.LocationID) {
			continue
		}
		b, ok := batches[key.BatchID]
		if !ok {
			if b, err = uc.batchRepo.GetByID(ctx, key.BatchID); err != nil {
				return nil, err
			}
			batches[key.BatchID] = b
		}
		if b == nil {
			continue
		}
		p, ok := products[b.ProductID]
		if !ok {
			if p, err = uc.productRepo.GetByID(ctx, b.ProductID); err != nil {
				return nil, err
			}
			products[b.ProductID] = p
		}
		if p == nil || (needle != "" && !strings.Contains(strings.ToLower(p.Article), needle)) {
			continue
		}
		loc, ok := locations[key.LocationID]
		if !ok {
			if loc, err = uc.locationRepo.GetByID(ctx, key.LocationID); err != nil {
				return nil, err
			}
			locations[key.LocationID] = loc
		}
		row := dto.StockBalanceRow{
			BatchID:      b.ID,
			OrderID:      b.OrderID,
			Article:      p.Article,
			Name:         p.Name,
			Size:         b.Size,
			Color:        b.Color,
			LocationID:   key.LocationID,
			LocationName: "-",
			Balance:      qty,
		}
		if loc != nil {
			row.LocationName = loc.Name
		}
		report.Rows = append(report.Rows, row)
		report.Total += qty
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		a, b := report.Rows[i], report.Rows[j]
		switch {
		case a.Article != b.Article:
			return a.Article < b.Article
		case a.Size != b.Size:
			return a.Size < b.Size
		case a.Color != b.Color:
			return a.Color < b.Color
		case a.LocationName != b.LocationName:
			return a.LocationName < b.LocationName
		}
		return a.BatchID < b.BatchID
	})
	return report, nil
}

// BalanceXLSX el mismo reporte como libro de Excel.
func (uc *MovementUseCase) BalanceXLSX(ctx context.Context, f dto.StockBalanceFilter) ([]byte, error) {
	if uc.sheet == nil {
		return nil, domain.ErrInvalidInput
	}
	report, err := uc.Balance(ctx, f)
	if err != nil {
		return nil, err
	}
	return uc.sheet.StockReport(report)
}

// ToMovementResponse mapea un documento a su DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	items := make([]dto.StockItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, dto.StockItemResponse{BatchID: it.BatchID, Quantity: it.Quantity})
	}
	return &dto.StockMovementResponse{
		ID:             m.ID,
		Kind:           m.Kind,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		SupplyID:       m.SupplyID,
		Comment:        m.Comment,
		Items:          items,
		CreatedAt:      m.CreatedAt,
	}
}
