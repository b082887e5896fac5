package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// Store almacenamiento en proceso para tests y demos locales (STORAGE_DRIVER=memory).
// Las transacciones se serializan con un único lock y trabajan sobre una copia del estado
// que solo reemplaza al original en el commit.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

type state struct {
	seq int64

	materials      map[string]entity.Material
	locations      map[string]entity.Location
	counterparties map[string]entity.Counterparty
	products       map[string]entity.Product
	recipes        map[string]entity.Recipe
	orders         map[string]entity.PurchaseOrder
	batches        map[string]entity.ProductionBatch
	purchases      map[string]entity.Purchase
	ledger         []entity.LedgerEntry // orden de creación
	orderItems     []entity.OrderItem
	stock          []entity.StockMovement // orden de creación
	supplies       map[string]entity.Supply
	accounts       map[string]entity.MoneyAccount
	categories     map[string]entity.MoneyCategory
	money          []entity.MoneyTransaction

	importFiles map[string]entity.ImportFile
	importRows  []entity.ImportRow
	wbProducts  map[int64]entity.WBProduct
	wbBarcodes  map[string]entity.WBBarcode
	snapshots   []entity.WBStockSnapshot

	// created orden de creación por ID, desempate de "el más reciente".
	created map[string]int64
}

func newState() *state {
	return &state{
		materials:      map[string]entity.Material{},
		locations:      map[string]entity.Location{},
		counterparties: map[string]entity.Counterparty{},
		products:       map[string]entity.Product{},
		recipes:        map[string]entity.Recipe{},
		orders:         map[string]entity.PurchaseOrder{},
		batches:        map[string]entity.ProductionBatch{},
		purchases:      map[string]entity.Purchase{},
		supplies:       map[string]entity.Supply{},
		accounts:       map[string]entity.MoneyAccount{},
		categories:     map[string]entity.MoneyCategory{},
		importFiles:    map[string]entity.ImportFile{},
		wbProducts:     map[int64]entity.WBProduct{},
		wbBarcodes:     map[string]entity.WBBarcode{},
		created:        map[string]int64{},
	}
}

// clone copia superficial: los valores guardados nunca se modifican en sitio
// (cada escritura reemplaza el valor completo), así que compartirlos es seguro.
func (s *state) clone() *state {
	return &state{
		seq:            s.seq,
		materials:      maps.Clone(s.materials),
		locations:      maps.Clone(s.locations),
		counterparties: maps.Clone(s.counterparties),
		products:       maps.Clone(s.products),
		recipes:        maps.Clone(s.recipes),
		orders:         maps.Clone(s.orders),
		batches:        maps.Clone(s.batches),
		purchases:      maps.Clone(s.purchases),
		ledger:         slices.Clone(s.ledger),
		orderItems:     slices.Clone(s.orderItems),
		stock:          slices.Clone(s.stock),
		supplies:       maps.Clone(s.supplies),
		accounts:       maps.Clone(s.accounts),
		categories:     maps.Clone(s.categories),
		money:          slices.Clone(s.money),
		importFiles:    maps.Clone(s.importFiles),
		importRows:     slices.Clone(s.importRows),
		wbProducts:     maps.Clone(s.wbProducts),
		wbBarcodes:     maps.Clone(s.wbBarcodes),
		snapshots:      slices.Clone(s.snapshots),
		created:        maps.Clone(s.created),
	}
}

func (s *state) touch(id string) {
	s.seq++
	s.created[id] = s.seq
}

// handle acceso al estado: dentro de una transacción usa su copia; fuera, el lock del Store.
type handle struct {
	s  *Store
	tx *state
}

func (h handle) read(fn func(st *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	return fn(h.s.st)
}

func (h handle) write(fn func(st *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	next := h.s.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	h.s.st = next
	return nil
}

// inTx ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
func (s *Store) inTx(fn func(h handle) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(handle{s: s, tx: next}); err != nil {
		return err
	}
	s.st = next
	return nil
}

func (s *Store) root() handle { return handle{s: s} }

// Repositorios fuera de transacción.

func (s *Store) Materials() *MaterialRepo                 { return &MaterialRepo{h: s.root()} }
func (s *Store) Locations() *LocationRepo                 { return &LocationRepo{h: s.root()} }
func (s *Store) Counterparties() *CounterpartyRepo        { return &CounterpartyRepo{h: s.root()} }
func (s *Store) Products() *ProductRepo                   { return &ProductRepo{h: s.root()} }
func (s *Store) Recipes() *RecipeRepo                     { return &RecipeRepo{h: s.root()} }
func (s *Store) Orders() *OrderRepo                       { return &OrderRepo{h: s.root()} }
func (s *Store) Batches() *BatchRepo                      { return &BatchRepo{h: s.root()} }
func (s *Store) Purchases() *PurchaseRepo                 { return &PurchaseRepo{h: s.root()} }
func (s *Store) Ledger() *LedgerRepo                      { return &LedgerRepo{h: s.root()} }
func (s *Store) WBImports() *WBImportRepo                 { return &WBImportRepo{h: s.root()} }
func (s *Store) Stock() *StockRepo                        { return &StockRepo{h: s.root()} }
func (s *Store) Supplies() *SupplyRepo                    { return &SupplyRepo{h: s.root()} }
func (s *Store) MoneyAccounts() *MoneyAccountRepo         { return &MoneyAccountRepo{h: s.root()} }
func (s *Store) MoneyCategories() *MoneyCategoryRepo      { return &MoneyCategoryRepo{h: s.root()} }
func (s *Store) MoneyTransactions() *MoneyTransactionRepo { return &MoneyTransactionRepo{h: s.root()} }

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
