package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

type env struct {
	ctx       context.Context
	store     *memory.Store
	movements *inventory.RecordMovementUseCase
	balances  *inventory.BalanceUseCase
	purchases *inventory.PurchaseUseCase
}

type fakeSheet struct{ got *dto.BalanceReport }

func (f *fakeSheet) BalanceReport(r *dto.BalanceReport) ([]byte, error) {
	f.got = r
	return []byte("xlsx"), nil
}

func newEnv(t *testing.T, sheet inventory.BalanceSheetWriter) *env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for _, m := range []*entity.Material{
		{ID: "tela", Name: "Tela", Unit: "m"},
		{ID: "cierre", Name: "Cierre", Unit: "pcs"},
		{ID: "bolsa", Name: "Bolsa", Unit: "pcs"},
	} {
		require.NoError(t, s.Materials().Create(ctx, m))
	}
	for _, l := range []*entity.Location{
		{ID: "taller", Name: "Taller", Kind: entity.LocationKindProduction},
		{ID: "ff", Name: "FF Moscú", Kind: entity.LocationKindFFMoscow},
	} {
		require.NoError(t, s.Locations().Create(ctx, l))
	}
	require.NoError(t, s.Counterparties().Create(ctx, &entity.Counterparty{ID: "prov", Name: "Textiles", Kind: entity.CounterpartyKindOther}))
	return &env{
		ctx:       ctx,
		store:     s,
		movements: inventory.NewRecordMovementUseCase(s, s.Materials(), s.Locations()),
		balances:  inventory.NewBalanceUseCase(s.Ledger(), s.Materials(), s.Locations(), sheet),
		purchases: inventory.NewPurchaseUseCase(s, s.Purchases(), s.Counterparties(), s.Materials(), s.Locations()),
	}
}

func (e *env) income(t *testing.T, to, material, qty string) {
	t.Helper()
	_, err := e.movements.RecordMovement(e.ctx, dto.RecordMovementRequest{
		Kind:         entity.LedgerKindIncome,
		ToLocationID: to,
		Lines:        []dto.MovementLineRequest{{MaterialID: material, Quantity: d(qty), UnitCost: ptr(d("1"))}},
	})
	require.NoError(t, err)
}

// ─── Movimientos ──────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaYSaldo(t *testing.T) {
	e := newEnv(t, nil)
	e.income(t, "taller", "tela", "60")
	e.income(t, "taller", "tela", "15.5")

	balance, err := e.balances.Balance(e.ctx, "taller")
	require.NoError(t, err)
	assert.True(t, d("75.5").Equal(balance["tela"]))
	assert.True(t, balance["cierre"].IsZero())
}

func TestRecordMovement_Traslado(t *testing.T) {
	e := newEnv(t, nil)
	e.income(t, "taller", "tela", "60")

	resp, err := e.movements.RecordMovement(e.ctx, dto.RecordMovementRequest{
		Kind:           entity.LedgerKindTransfer,
		FromLocationID: "taller",
		ToLocationID:   "ff",
		Lines:          []dto.MovementLineRequest{{MaterialID: "tela", Quantity: d("20")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "taller", resp.FromLocationID)

	origin, err := e.balances.Balance(e.ctx, "taller")
	require.NoError(t, err)
	dest, err := e.balances.Balance(e.ctx, "ff")
	require.NoError(t, err)
	assert.True(t, d("40").Equal(origin["tela"]))
	assert.True(t, d("20").Equal(dest["tela"]))
}

func TestRecordMovement_TrasladoSinSaldo(t *testing.T) {
	e := newEnv(t, nil)
	e.income(t, "taller", "tela", "5")

	_, err := e.movements.RecordMovement(e.ctx, dto.RecordMovementRequest{
		Kind:           entity.LedgerKindTransfer,
		FromLocationID: "taller",
		ToLocationID:   "ff",
		Lines: []dto.MovementLineRequest{
			{MaterialID: "tela", Quantity: d("3")},
			{MaterialID: "tela", Quantity: d("3")},
		},
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortages, 1)
	assert.True(t, d("6").Equal(insufficient.Shortages[0].Required))
	assert.Equal(t, "Tela", insufficient.Shortages[0].MaterialName)

	list, err := e.balances.ListEntries(e.ctx, "ff", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordMovement_CostoPorDefectoUltimoPrecio(t *testing.T) {
	e := newEnv(t, nil)
	_, err := e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov",
		Items:      []dto.PurchaseItemRequest{{MaterialID: "cierre", Quantity: d("3"), Amount: d("10")}},
	})
	require.NoError(t, err)

	resp, err := e.movements.RecordMovement(e.ctx, dto.RecordMovementRequest{
		Kind:         entity.LedgerKindIncome,
		ToLocationID: "taller",
		Lines: []dto.MovementLineRequest{
			{MaterialID: "cierre", Quantity: d("2")},
			{MaterialID: "bolsa", Quantity: d("1")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "3.3333", resp.Lines[0].UnitCost.StringFixed(4))
	assert.True(t, resp.Lines[1].UnitCost.IsZero(), "sin compras el costo queda en cero")
}

func TestRecordMovement_Validaciones(t *testing.T) {
	e := newEnv(t, nil)
	line := []dto.MovementLineRequest{{MaterialID: "tela", Quantity: d("1")}}

	tests := []struct {
		name string
		in   dto.RecordMovementRequest
		want error
	}{
		{"descargo manual", dto.RecordMovementRequest{Kind: entity.LedgerKindWriteOff, FromLocationID: "taller", Lines: line}, domain.ErrInvalidInput},
		{"entrada con origen", dto.RecordMovementRequest{Kind: entity.LedgerKindIncome, FromLocationID: "ff", ToLocationID: "taller", Lines: line}, domain.ErrInvalidInput},
		{"traslado a sí mismo", dto.RecordMovementRequest{Kind: entity.LedgerKindTransfer, FromLocationID: "taller", ToLocationID: "taller", Lines: line}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.RecordMovementRequest{Kind: entity.LedgerKindIncome, ToLocationID: "taller", Lines: []dto.MovementLineRequest{{MaterialID: "tela", Quantity: d("-1")}}}, domain.ErrInvalidInput},
		{"costo negativo", dto.RecordMovementRequest{Kind: entity.LedgerKindIncome, ToLocationID: "taller", Lines: []dto.MovementLineRequest{{MaterialID: "tela", Quantity: d("1"), UnitCost: ptr(d("-2"))}}}, domain.ErrInvalidInput},
		{"sin líneas", dto.RecordMovementRequest{Kind: entity.LedgerKindIncome, ToLocationID: "taller"}, domain.ErrInvalidInput},
		{"ubicación inexistente", dto.RecordMovementRequest{Kind: entity.LedgerKindIncome, ToLocationID: "nope", Lines: line}, domain.ErrNotFound},
		{"material inexistente", dto.RecordMovementRequest{Kind: entity.LedgerKindIncome, ToLocationID: "taller", Lines: []dto.MovementLineRequest{{MaterialID: "nope", Quantity: d("1")}}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.movements.RecordMovement(e.ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateMovement_Descargo(t *testing.T) {
	ok := &entity.LedgerEntry{
		Kind:           entity.LedgerKindWriteOff,
		FromLocationID: "taller",
		Lines:          []entity.LedgerLine{{MaterialID: "tela", Quantity: d("1")}},
	}
	assert.NoError(t, inventory.ValidateMovement(ok))

	withDest := *ok
	withDest.ToLocationID = "ff"
	assert.ErrorIs(t, inventory.ValidateMovement(&withDest), domain.ErrInvalidInput)
}

// ─── Compras ──────────────────────────────────────────────────────────────────

func TestCreatePurchase_ConUbicacionDeRecepcion(t *testing.T) {
	e := newEnv(t, nil)

	resp, err := e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{
		SupplierID:        "prov",
		Date:              time.Date(2024, 3, 5, 17, 45, 0, 0, time.UTC),
		ReceiveLocationID: "taller",
		Items: []dto.PurchaseItemRequest{
			{MaterialID: "tela", Quantity: d("40"), Amount: d("100")},
			{MaterialID: "cierre", Quantity: d("3"), Amount: d("10")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "RUB", resp.Currency)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), resp.Date)
	assert.Equal(t, "110.00", resp.Total.StringFixed(2))
	assert.Equal(t, "2.5000", resp.Items[0].UnitPrice.StringFixed(4))
	require.NotEmpty(t, resp.IncomeEntryID)

	entry, err := e.balances.GetEntry(e.ctx, resp.IncomeEntryID)
	require.NoError(t, err)
	assert.Equal(t, entity.LedgerKindIncome, entry.Kind)
	assert.Equal(t, resp.ID, entry.PurchaseID)
	assert.Equal(t, "2.5000", entry.Lines[0].UnitCost.StringFixed(4))

	price, ok, err := e.purchases.LastUnitPrice(e.ctx, "tela")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d("2.5").Equal(price))

	balance, err := e.balances.Balance(e.ctx, "taller")
	require.NoError(t, err)
	assert.True(t, d("40").Equal(balance["tela"]))
}

func TestCreatePurchase_SinRecepcionNoTocaElLibro(t *testing.T) {
	e := newEnv(t, nil)

	resp, err := e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov",
		Items:      []dto.PurchaseItemRequest{{MaterialID: "tela", Quantity: d("1"), Amount: d("2")}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.IncomeEntryID)

	balance, err := e.balances.Balance(e.ctx, "taller")
	require.NoError(t, err)
	assert.Empty(t, balance)
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	e := newEnv(t, nil)
	item := []dto.PurchaseItemRequest{{MaterialID: "tela", Quantity: d("1"), Amount: d("2")}}

	_, err := e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{SupplierID: "prov"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{SupplierID: "nope", Items: item})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{SupplierID: "prov", ReceiveLocationID: "nope", Items: item})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov",
		Items:      []dto.PurchaseItemRequest{{MaterialID: "tela", Quantity: d("0"), Amount: d("2")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePurchase_CantidadQueRedondeaACero(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{
		SupplierID:        "prov",
		ReceiveLocationID: "taller",
		Items:             []dto.PurchaseItemRequest{{MaterialID: "tela", Quantity: d("0.0004"), Amount: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := e.purchases.List(e.ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	out, err := e.purchases.CreatePurchase(e.ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov",
		Items:      []dto.PurchaseItemRequest{{MaterialID: "tela", Quantity: d("0.0006"), Amount: d("1")}},
	})
	require.NoError(t, err)
	assert.True(t, d("0.001").Equal(out.Items[0].Quantity))
}

// ─── Reporte de saldos ────────────────────────────────────────────────────────

func TestReport_OrdenadoPorNombreSinCeros(t *testing.T) {
	sheet := &fakeSheet{}
	e := newEnv(t, sheet)
	e.income(t, "taller", "tela", "10")
	e.income(t, "taller", "cierre", "4")
	e.income(t, "taller", "bolsa", "2")
	_, err := e.movements.RecordMovement(e.ctx, dto.RecordMovementRequest{
		Kind: entity.LedgerKindTransfer, FromLocationID: "taller", ToLocationID: "ff",
		Lines: []dto.MovementLineRequest{{MaterialID: "bolsa", Quantity: d("2")}},
	})
	require.NoError(t, err)

	report, err := e.balances.Report(e.ctx, "taller")
	require.NoError(t, err)
	assert.Equal(t, "Taller", report.LocationName)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Cierre", report.Rows[0].Name)
	assert.Equal(t, "Tela", report.Rows[1].Name)
	assert.Equal(t, "m", report.Rows[1].Unit)

	data, err := e.balances.ReportXLSX(e.ctx, "taller")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	require.NotNil(t, sheet.got)
	assert.Len(t, sheet.got.Rows, 2)

	_, err = e.balances.Report(e.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportXLSX_SinWriter(t *testing.T) {
	e := newEnv(t, nil)
	_, err := e.balances.ReportXLSX(e.ctx, "taller")
	assert.Error(t, err)
}

// ─── Acta ─────────────────────────────────────────────────────────────────────

type fakePDF struct{ got *inventory.EntryAct }

func (f *fakePDF) GenerateActPDF(_ context.Context, act *inventory.EntryAct) ([]byte, error) {
	f.got = act
	return []byte("%PDF"), nil
}

func TestActUseCase_ActPDF(t *testing.T) {
	e := newEnv(t, nil)
	resp, err := e.movements.RecordMovement(e.ctx, dto.RecordMovementRequest{
		Kind:         entity.LedgerKindIncome,
		ToLocationID: "taller",
		Lines: []dto.MovementLineRequest{
			{MaterialID: "tela", Quantity: d("3"), UnitCost: ptr(d("3.3333"))},
			{MaterialID: "cierre", Quantity: d("10"), UnitCost: ptr(d("0.5"))},
		},
	})
	require.NoError(t, err)

	pdf := &fakePDF{}
	uc := inventory.NewActUseCase(e.store.Ledger(), e.store.Materials(), e.store.Locations(), pdf)
	data, err := uc.ActPDF(e.ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	act := pdf.got
	require.NotNil(t, act)
	assert.Empty(t, act.FromName)
	assert.Equal(t, "Taller", act.ToName)
	require.Len(t, act.Lines, 2)
	assert.Equal(t, "Tela", act.Lines[0].MaterialName)
	assert.Equal(t, "m", act.Lines[0].Unit)
	assert.True(t, d("10.00").Equal(act.Lines[0].Amount))
	assert.True(t, d("15.00").Equal(act.Total), act.Total.String())
}

func TestActUseCase_AsientoInexistente(t *testing.T) {
	e := newEnv(t, nil)
	uc := inventory.NewActUseCase(e.store.Ledger(), e.store.Materials(), e.store.Locations(), &fakePDF{})

	_, err := uc.ActPDF(e.ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
