package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func income(id, to, material, qty string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:           id,
		Kind:         entity.LedgerKindIncome,
		ToLocationID: to,
		Lines:        []entity.LedgerLine{{ID: id + "-1", MaterialID: material, Quantity: d(qty)}},
	}
}

// ─── Saldos ───────────────────────────────────────────────────────────────────

func TestBalance_UbicacionSinMovimientos(t *testing.T) {
	s := NewStore()

	balance, err := s.Ledger().BalanceByLocation(context.Background(), "nueva")
	require.NoError(t, err)
	assert.Empty(t, balance)
}

func TestBalance_UnaEntrada(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Ledger().Create(ctx, income("e1", "taller", "M", "42.5")))

	balance, err := s.Ledger().BalanceByLocation(ctx, "taller")
	require.NoError(t, err)
	assert.True(t, d("42.5").Equal(balance["M"]))
}

func TestLedger_ListByLocation_MasRecientePrimero(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Ledger().Create(ctx, income("e1", "taller", "M", "1")))
	require.NoError(t, s.Ledger().Create(ctx, income("e2", "otra", "M", "1")))
	require.NoError(t, s.Ledger().Create(ctx, income("e3", "taller", "M", "1")))

	list, err := s.Ledger().ListByLocation(ctx, "taller", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e3", list[0].ID)
	assert.Equal(t, "e1", list[1].ID)
}

func TestLedger_SegundoDescargoDeLaPartidaRechazado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	w := &entity.LedgerEntry{ID: "w1", Kind: entity.LedgerKindWriteOff, FromLocationID: "taller", BatchID: "b1",
		Lines: []entity.LedgerLine{{MaterialID: "M", Quantity: d("1")}}}
	require.NoError(t, s.Ledger().Create(ctx, w))

	w2 := *w
	w2.ID = "w2"
	err := s.Ledger().Create(ctx, &w2)
	var already *domain.AlreadyWrittenOffError
	require.True(t, errors.As(err, &already))
	assert.Equal(t, "w1", already.EntryID)
}

// ─── Transacciones ────────────────────────────────────────────────────────────

func TestRun_RollbackDescartaEscrituras(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, []string{"taller"}, func(ledgerRepo repository.LedgerRepository, _ repository.PurchaseRepository) error {
		require.NoError(t, ledgerRepo.Create(ctx, income("e1", "taller", "M", "10")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Ledger().GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRun_CommitPublicaEscrituras(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Run(ctx, nil, func(ledgerRepo repository.LedgerRepository, _ repository.PurchaseRepository) error {
		return ledgerRepo.Create(ctx, income("e1", "taller", "M", "10"))
	})
	require.NoError(t, err)

	got, err := s.Ledger().GetByID(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Lines, 1)
}

// ─── Fichas técnicas ──────────────────────────────────────────────────────────

func TestRecipes_UnaSolaPorDefectoPorProducto(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Recipes().Create(ctx, &entity.Recipe{ID: "r1", ProductID: "p1", IsDefault: true}))

	err := s.Recipes().Create(ctx, &entity.Recipe{ID: "r2", ProductID: "p1", IsDefault: true})
	assert.ErrorIs(t, err, domain.ErrDefaultRecipeExists)

	require.NoError(t, s.Recipes().Create(ctx, &entity.Recipe{ID: "r3", ProductID: "p1"}))
	require.NoError(t, s.Recipes().Create(ctx, &entity.Recipe{ID: "r4", ProductID: "p2", IsDefault: true}))
}

func TestRecipes_DefaultsDuplicados_MasRecientePrimero(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()
	// Datos manipulados directamente: dos fichas por defecto con la misma fecha.
	s.st.recipes["viejo"] = entity.Recipe{ID: "viejo", ProductID: "p1", IsDefault: true, CreatedAt: now}
	s.st.touch("viejo")
	s.st.recipes["nuevo"] = entity.Recipe{ID: "nuevo", ProductID: "p1", IsDefault: true, CreatedAt: now}
	s.st.touch("nuevo")

	list, err := s.Recipes().ListDefaultsByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "nuevo", list[0].ID)
}

func TestRecipes_MismaFecha_GanaLaRegistradaDespues(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Recipes().Create(ctx, &entity.Recipe{ID: "primera", ProductID: "p1", CreatedAt: now}))
	require.NoError(t, s.Recipes().Create(ctx, &entity.Recipe{ID: "segunda", ProductID: "p1", CreatedAt: now}))
	require.NoError(t, s.Recipes().Create(ctx, &entity.Recipe{ID: "vieja", ProductID: "p1", CreatedAt: now.Add(-time.Hour)}))

	list, err := s.Recipes().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"segunda", "primera", "vieja"}, ids)

	require.NoError(t, s.Recipes().SetDefault(ctx, "primera"))
	defaults, err := s.Recipes().ListDefaultsByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, defaults, 1)
	assert.Equal(t, "primera", defaults[0].ID)
}

// ─── Compras ──────────────────────────────────────────────────────────────────

func TestLastUnitPrice_FechaLuegoOrdenDeCreacion(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	day := func(n int) time.Time { return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC) }
	item := func(price string) []entity.PurchaseItem {
		return []entity.PurchaseItem{{MaterialID: "M", Quantity: d("1"), Amount: d(price), UnitPrice: d(price)}}
	}

	_, ok, err := s.Purchases().LastUnitPrice(ctx, "M")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: "p-tarde", Date: day(10), Items: item("3.00")}))
	require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: "p-antes", Date: day(5), Items: item("1.00")}))

	price, ok, err := s.Purchases().LastUnitPrice(ctx, "M")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d("3.00").Equal(price), "gana la fecha más reciente aunque se haya registrado antes")

	require.NoError(t, s.Purchases().Create(ctx, &entity.Purchase{ID: "p-mismo-dia", Date: day(10), Items: item("2.50")}))
	price, _, err = s.Purchases().LastUnitPrice(ctx, "M")
	require.NoError(t, err)
	assert.True(t, d("2.50").Equal(price), "a igual fecha gana la registrada después")
}

// ─── WB ───────────────────────────────────────────────────────────────────────

func TestWBUpsert_ConservaID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.WBImports()

	p1 := &entity.WBProduct{ID: "a", NmID: 100, VendorCode: "HD-1"}
	require.NoError(t, repo.UpsertProduct(ctx, p1))
	p2 := &entity.WBProduct{ID: "b", NmID: 100, VendorCode: "HD-1-nuevo"}
	require.NoError(t, repo.UpsertProduct(ctx, p2))

	assert.Equal(t, "a", p2.ID)
	products := repo.WBProducts()
	require.Len(t, products, 1)
	assert.Equal(t, "HD-1-nuevo", products[0].VendorCode)
}
