package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// CatalogUseCase casos de uso de datos de referencia: materiales, ubicaciones, contrapartes y productos.
type CatalogUseCase struct {
	materialRepo     repository.MaterialRepository
	locationRepo     repository.LocationRepository
	counterpartyRepo repository.CounterpartyRepository
	productRepo      repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
	counterpartyRepo repository.CounterpartyRepository,
	productRepo repository.ProductRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		materialRepo:     materialRepo,
		locationRepo:     locationRepo,
		counterpartyRepo: counterpartyRepo,
		productRepo:      productRepo,
	}
}

// ─── Materiales ───────────────────────────────────────────────────────────────

// CreateMaterial crea un material.
func (uc *CatalogUseCase) CreateMaterial(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.Material{
		ID:        uuid.New().String(),
		Name:      name,
		Unit:      unit,
		Color:     strings.TrimSpace(in.Color),
		CreatedAt: time.Now(),
	}
	if err := uc.materialRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// GetMaterial obtiene un material por ID.
func (uc *CatalogUseCase) GetMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(m), nil
}

// ListMaterials lista materiales con paginación.
func (uc *CatalogUseCase) ListMaterials(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.MaterialResponse], error) {
	list, err := uc.materialRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.ListResponse[dto.MaterialResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ─── Ubicaciones ──────────────────────────────────────────────────────────────

// CreateLocation crea una ubicación.
func (uc *CatalogUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidLocationKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	l := &entity.Location{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      in.Kind,
		CreatedAt: time.Now(),
	}
	if err := uc.locationRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toLocationResponse(l), nil
}

// GetLocation obtiene una ubicación por ID.
func (uc *CatalogUseCase) GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(l), nil
}

// ListLocations lista ubicaciones con paginación.
func (uc *CatalogUseCase) ListLocations(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.LocationResponse], error) {
	list, err := uc.locationRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.ListResponse[dto.LocationResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ─── Contrapartes ─────────────────────────────────────────────────────────────

// CreateCounterparty crea una contraparte.
func (uc *CatalogUseCase) CreateCounterparty(ctx context.Context, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidCounterpartyKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	cp := &entity.Counterparty{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      in.Kind,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: time.Now(),
	}
	if err := uc.counterpartyRepo.Create(ctx, cp); err != nil {
		return nil, err
	}
	return toCounterpartyResponse(cp), nil
}

// GetCounterparty obtiene una contraparte por ID.
func (uc *CatalogUseCase) GetCounterparty(ctx context.Context, id string) (*dto.CounterpartyResponse, error) {
	cp, err := uc.counterpartyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, domain.ErrNotFound
	}
	return toCounterpartyResponse(cp), nil
}

// ListCounterparties lista contrapartes con paginación.
func (uc *CatalogUseCase) ListCounterparties(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.CounterpartyResponse], error) {
	list, err := uc.counterpartyRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CounterpartyResponse, 0, len(list))
	for _, cp := range list {
		items = append(items, *toCounterpartyResponse(cp))
	}
	return &dto.ListResponse[dto.CounterpartyResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ─── Productos ────────────────────────────────────────────────────────────────

// CreateProduct crea un producto. domain.ErrDuplicate si el artículo ya existe.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	article := strings.TrimSpace(in.Article)
	name := strings.TrimSpace(in.Name)
	if article == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByArticle(ctx, article)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	p := &entity.Product{
		ID:        uuid.New().String(),
		Article:   article,
		Name:      name,
		Color:     strings.TrimSpace(in.Color),
		Size:      strings.TrimSpace(in.Size),
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: time.Now(),
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts lista productos con paginación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.ProductResponse], error) {
	list, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ListResponse[dto.ProductResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{ID: m.ID, Name: m.Name, Unit: m.Unit, Color: m.Color, CreatedAt: m.CreatedAt}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, Kind: l.Kind, CreatedAt: l.CreatedAt}
}

func toCounterpartyResponse(cp *entity.Counterparty) *dto.CounterpartyResponse {
	return &dto.CounterpartyResponse{
		ID:        cp.ID,
		Name:      cp.Name,
		Kind:      cp.Kind,
		Phone:     cp.Phone,
		Email:     cp.Email,
		CreatedAt: cp.CreatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Article:   p.Article,
		Name:      p.Name,
		Color:     p.Color,
		Size:      p.Size,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
	}
}
