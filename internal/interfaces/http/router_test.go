package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Atelier-api/internal/application/auth"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/finance"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
	"github.com/jhoicas/Atelier-api/internal/application/usecase"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/excel"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Atelier-api/internal/interfaces/http"
)

const testAdminKey = "llave-de-administracion"

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiEnv struct {
	app   *fiber.App
	admin string
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	s := memory.NewStore()
	m := metrics.New()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	require.NoError(t, err)

	resolver := production.NewRecipeResolver(s.Recipes(), s.Products())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:        "atelier-test",
		CatalogUC:      usecase.NewCatalogUseCase(s.Materials(), s.Locations(), s.Counterparties(), s.Products()),
		RecordMovement: inventory.NewRecordMovementUseCase(s, s.Materials(), s.Locations()),
		BalanceUC:      inventory.NewBalanceUseCase(s.Ledger(), s.Materials(), s.Locations(), excel.BalanceWriter{}),
		PurchaseUC:     inventory.NewPurchaseUseCase(s, s.Purchases(), s.Counterparties(), s.Materials(), s.Locations()),
		ActUC:          inventory.NewActUseCase(s.Ledger(), s.Materials(), s.Locations(), pdf.NewMarotoActGenerator("Atelier")),
		RecipeUC:       production.NewRecipeUseCase(s, s.Recipes(), s.Products(), s.Materials()),
		OrderUC:        production.NewOrderUseCase(s, s.Orders(), s.Batches(), s.Products(), s.Recipes(), s.Counterparties()),
		WriteOffUC:     production.NewWriteOffUseCase(s, s.Batches(), s.Locations(), s.Materials(), resolver, m, nil),
		WBImportUC:     wb.NewImportStocksUseCase(s, s.WBImports(), excel.SheetReader{}, m, nil),
		StockUC:        stock.NewMovementUseCase(s, s.Stock(), s.Batches(), s.Products(), s.Locations(), excel.StockBalanceWriter{}),
		SupplyUC:       stock.NewSupplyUseCase(s, s.Supplies(), s.Orders(), s.Batches(), s.Locations(), nil),
		FinanceUC:      finance.NewUseCase(s.MoneyAccounts(), s.MoneyCategories(), s.MoneyTransactions(), s.Orders(), s.Counterparties()),
		AuthUC: auth.NewAuthUseCase(string(hash), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: testJWTSecret,
		Metrics:   m.Handler(),
	})
	return &apiEnv{app: app, admin: tokenForRole(t, "admin")}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// create hace POST como admin, exige 201 y devuelve el id creado.
func (e *apiEnv) create(t *testing.T, path string, body any) string {
	t.Helper()
	status, out := e.do(t, http.MethodPost, path, e.admin, body)
	require.Equal(t, http.StatusCreated, status, string(out))
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(out, &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

// world: tela comprada a 2.5 (100 m en el taller), producto con ficha por defecto de 0.5 m.
type world struct {
	material, location, factory, product string
}

func (e *apiEnv) seed(t *testing.T) world {
	t.Helper()
	w := world{
		material: e.create(t, "/api/materials", fiber.Map{"name": "Tela футер", "unit": "m"}),
		location: e.create(t, "/api/locations", fiber.Map{"name": "Taller", "kind": "production"}),
		factory:  e.create(t, "/api/counterparties", fiber.Map{"name": "Fábrica", "kind": "factory"}),
		product:  e.create(t, "/api/products", fiber.Map{"article": "HD-001", "name": "Sudadera"}),
	}
	e.create(t, "/api/purchases", fiber.Map{
		"supplier_id":         w.factory,
		"receive_location_id": w.location,
		"items":               []fiber.Map{{"material_id": w.material, "quantity": "100", "amount": "250"}},
	})
	e.create(t, "/api/recipes", fiber.Map{
		"product_id": w.product,
		"name":       "Sudadera base",
		"is_default": true,
		"lines":      []fiber.Map{{"material_id": w.material, "quantity_per_unit": "0.5"}},
	})
	return w
}

func (e *apiEnv) batch(t *testing.T, w world, number string, planned int) string {
	t.Helper()
	status, out := e.do(t, http.MethodPost, "/api/orders", e.admin, fiber.Map{
		"number":     number,
		"factory_id": w.factory,
		"batches":    []fiber.Map{{"product_id": w.product, "planned_quantity": planned}},
	})
	require.Equal(t, http.StatusCreated, status, string(out))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(out, &order))
	require.Len(t, order.Batches, 1)
	return order.Batches[0].ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Descargo por ficha técnica
// ──────────────────────────────────────────────────────────────────────────────

func TestWriteOff_Flujo(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-1", 100)

	status, out := e.do(t, http.MethodPost, "/api/batches/"+batchID+"/writeoff", e.admin, fiber.Map{"location_id": w.location})
	require.Equal(t, http.StatusCreated, status, string(out))
	var entry dto.LedgerEntryResponse
	require.NoError(t, json.Unmarshal(out, &entry))
	assert.Equal(t, "writeoff", entry.Kind)
	assert.Equal(t, batchID, entry.BatchID)
	require.Len(t, entry.Lines, 1)
	assert.Equal(t, "50", entry.Lines[0].Quantity.String())
	assert.Equal(t, "125", entry.TotalCost.String())

	status, out = e.do(t, http.MethodGet, "/api/batches/"+batchID, e.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var batch dto.BatchResponse
	require.NoError(t, json.Unmarshal(out, &batch))
	require.NotNil(t, batch.MaterialCostTotal)
	assert.Equal(t, "125", batch.MaterialCostTotal.String())
	assert.Equal(t, "1.25", batch.MaterialCostPerUnit.String())

	status, out = e.do(t, http.MethodGet, "/api/locations/"+w.location+"/balance", e.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var report dto.BalanceReport
	require.NoError(t, json.Unmarshal(out, &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "50", report.Rows[0].Balance.String())

	// segundo descargo de la misma partida
	status, out = e.do(t, http.MethodPost, "/api/batches/"+batchID+"/writeoff", e.admin, fiber.Map{"location_id": w.location})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(out), "ALREADY_WRITTEN_OFF")
	assert.Contains(t, string(out), entry.ID)
}

func TestWriteOff_StockInsuficienteListaFaltantes(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-2", 1000)

	status, out := e.do(t, http.MethodPost, "/api/batches/"+batchID+"/writeoff", e.admin, fiber.Map{"location_id": w.location})
	require.Equal(t, http.StatusConflict, status)
	var body dto.InsufficientStockResponse
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.Len(t, body.Shortages, 1)
	assert.Equal(t, w.material, body.Shortages[0].MaterialID)
	assert.Equal(t, "500", body.Shortages[0].Required.String())
	assert.Equal(t, "100", body.Shortages[0].Available.String())
}

func TestWriteOff_SinFichaTecnica(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	w.product = e.create(t, "/api/products", fiber.Map{"article": "HD-002", "name": "Pantalón"})
	batchID := e.batch(t, w, "PO-3", 10)

	status, out := e.do(t, http.MethodPost, "/api/batches/"+batchID+"/writeoff", e.admin, fiber.Map{"location_id": w.location})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(out), "MISSING_RECIPE")
	assert.Contains(t, string(out), "HD-002")
}

func TestWriteOff_PartidaInexistente(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)

	status, out := e.do(t, http.MethodPost, "/api/batches/no-existe/writeoff", e.admin, fiber.Map{"location_id": w.location})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(out), "NOT_FOUND")
}

func TestWriteOff_RolBodegueroBloqueado(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-4", 10)

	status, _ := e.do(t, http.MethodPost, "/api/batches/"+batchID+"/writeoff", tokenForRole(t, "bodeguero"), fiber.Map{"location_id": w.location})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = e.do(t, http.MethodPost, "/api/batches/"+batchID+"/writeoff", tokenForRole(t, "planificador"), fiber.Map{"location_id": w.location})
	assert.Equal(t, http.StatusCreated, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, saldos y actas
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_ArticuloDuplicado(t *testing.T) {
	e := newAPI(t)
	e.create(t, "/api/products", fiber.Map{"article": "HD-001", "name": "Sudadera"})

	status, out := e.do(t, http.MethodPost, "/api/products", e.admin, fiber.Map{"article": "HD-001", "name": "Otra"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(out), "DUPLICATE")
}

func TestCatalog_Validacion(t *testing.T) {
	e := newAPI(t)
	status, out := e.do(t, http.MethodPost, "/api/locations", e.admin, fiber.Map{"name": "X", "kind": "luna"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(out), "VALIDATION")
}

func TestBalance_XLSX(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)

	req := httptest.NewRequest(http.MethodGet, "/api/locations/"+w.location+"/balance?format=xlsx", nil)
	req.Header.Set("Authorization", e.admin)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tela футер", rows[1][1])
}

func TestLedgerEntry_PDF(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-5", 10)
	entryID := e.create(t, "/api/batches/"+batchID+"/writeoff", fiber.Map{"location_id": w.location})

	req := httptest.NewRequest(http.MethodGet, "/api/ledger/entries/"+entryID+"/pdf", nil)
	req.Header.Set("Authorization", e.admin)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestLedger_TrasladoSinSaldo(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	ff := e.create(t, "/api/locations", fiber.Map{"name": "FF Moscú", "kind": "ff_moscow"})

	status, out := e.do(t, http.MethodPost, "/api/ledger/entries", tokenForRole(t, "bodeguero"), fiber.Map{
		"kind":             "transfer",
		"from_location_id": w.location,
		"to_location_id":   ff,
		"lines":            []fiber.Map{{"material_id": w.material, "quantity": "150"}},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(out), "INSUFFICIENT_STOCK")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mercadería terminada y entregas
// ──────────────────────────────────────────────────────────────────────────────

func TestSupply_AceptadaSumaAlSaldoDeMercaderia(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-10", 20)
	var batch dto.BatchResponse
	status, out := e.do(t, http.MethodGet, "/api/batches/"+batchID, e.admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(out, &batch))
	wbLoc := e.create(t, "/api/locations", fiber.Map{"name": "WB Koledino", "kind": "wb"})
	keeper := tokenForRole(t, "bodeguero")

	status, out = e.do(t, http.MethodPost, "/api/orders/"+batch.OrderID+"/supplies", keeper, fiber.Map{
		"number": "WB-77",
		"items":  []fiber.Map{{"batch_id": batchID, "location_id": wbLoc, "quantity": 12}},
	})
	require.Equal(t, http.StatusCreated, status, string(out))
	var supply dto.SupplyResponse
	require.NoError(t, json.Unmarshal(out, &supply))
	assert.Equal(t, "in_transit", supply.Status)

	status, out = e.do(t, http.MethodPost, "/api/supplies/"+supply.ID+"/status", keeper, fiber.Map{"status": "accepted"})
	require.Equal(t, http.StatusOK, status, string(out))
	require.NoError(t, json.Unmarshal(out, &supply))
	assert.Len(t, supply.IncomeMovementIDs, 1)

	status, out = e.do(t, http.MethodPost, "/api/supplies/"+supply.ID+"/status", keeper, fiber.Map{"status": "arrived"})
	assert.Equal(t, http.StatusConflict, status, string(out))

	status, out = e.do(t, http.MethodGet, "/api/stock/balance?article=hd&location_id="+wbLoc, e.admin, nil)
	require.Equal(t, http.StatusOK, status, string(out))
	var report dto.StockBalanceReport
	require.NoError(t, json.Unmarshal(out, &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "HD-001", report.Rows[0].Article)
	assert.Equal(t, "WB Koledino", report.Rows[0].LocationName)
	assert.Equal(t, 12, report.Rows[0].Balance)

	status, out = e.do(t, http.MethodGet, "/api/stock/balance?article=zz", e.admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Empty(t, report.Rows)
}

func TestStock_SalidaSinSaldoListaPartidas(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-11", 5)
	ff := e.create(t, "/api/locations", fiber.Map{"name": "FF Moscú", "kind": "ff_moscow"})
	keeper := tokenForRole(t, "bodeguero")

	status, out := e.do(t, http.MethodPost, "/api/stock/movements", keeper, fiber.Map{
		"kind": "income", "to_location_id": ff,
		"items": []fiber.Map{{"batch_id": batchID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, status, string(out))

	status, out = e.do(t, http.MethodPost, "/api/stock/movements", keeper, fiber.Map{
		"kind": "outcome", "from_location_id": ff,
		"items": []fiber.Map{{"batch_id": batchID, "quantity": 4}},
	})
	require.Equal(t, http.StatusConflict, status)
	var body dto.InsufficientGoodsResponse
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.Len(t, body.Shortages, 1)
	assert.Equal(t, dto.GoodsShortageResponse{BatchID: batchID, Article: "HD-001", Required: 4, Available: 3}, body.Shortages[0])

	status, _ = e.do(t, http.MethodPost, "/api/stock/movements", tokenForRole(t, "planificador"), fiber.Map{
		"kind": "income", "to_location_id": ff,
		"items": []fiber.Map{{"batch_id": batchID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestStockBalance_XLSX(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	batchID := e.batch(t, w, "PO-12", 5)
	ff := e.create(t, "/api/locations", fiber.Map{"name": "FF Moscú", "kind": "ff_moscow"})
	e.create(t, "/api/stock/movements", fiber.Map{
		"kind": "income", "to_location_id": ff,
		"items": []fiber.Map{{"batch_id": batchID, "quantity": 5}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stock/balance?format=xlsx", nil)
	req.Header.Set("Authorization", e.admin)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "HD-001", rows[1][0])
	assert.Equal(t, "5", rows[1][5])
}

// ──────────────────────────────────────────────────────────────────────────────
// Finanzas
// ──────────────────────────────────────────────────────────────────────────────

func TestFinance_PagosDelPedido(t *testing.T) {
	e := newAPI(t)
	w := e.seed(t)
	status, out := e.do(t, http.MethodPost, "/api/orders", e.admin, fiber.Map{
		"number":        "PO-20",
		"factory_id":    w.factory,
		"currency":      "USD",
		"exchange_rate": "90",
		"batches":       []fiber.Map{{"product_id": w.product, "planned_quantity": 100, "price": "8.5"}},
	})
	require.Equal(t, http.StatusCreated, status, string(out))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(out, &order))
	assert.Equal(t, "850", order.TotalCurrency.String())
	assert.Equal(t, "76500", order.TotalRUB.String())

	account := e.create(t, "/api/finance/accounts", fiber.Map{"name": "Caja USD", "currency": "USD"})
	category := e.create(t, "/api/finance/categories", fiber.Map{"name": "Pago a fábrica"})
	e.create(t, "/api/finance/transactions", fiber.Map{
		"kind": "expense", "amount": "300", "exchange_rate": "88",
		"from_account_id": account, "order_id": order.ID, "category_id": category,
	})

	status, out = e.do(t, http.MethodGet, "/api/orders/"+order.ID+"/payments", tokenForRole(t, "planificador"), nil)
	require.Equal(t, http.StatusOK, status, string(out))
	var pay dto.OrderPaymentsResponse
	require.NoError(t, json.Unmarshal(out, &pay))
	assert.Equal(t, "300", pay.PaidCurrency.String())
	assert.Equal(t, "26400", pay.PaidRUB.String())
	assert.Equal(t, "550", pay.OutstandingCurrency.String())
	assert.Equal(t, "50100", pay.OutstandingRUB.String())

	status, out = e.do(t, http.MethodGet, "/api/finance/accounts/"+account+"/balance", e.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var bal dto.AccountBalanceResponse
	require.NoError(t, json.Unmarshal(out, &bal))
	assert.Equal(t, "-300", bal.Balance.String())

	status, out = e.do(t, http.MethodGet, "/api/finance/transactions?order_id="+order.ID, e.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(out), category)

	status, _ = e.do(t, http.MethodPost, "/api/finance/accounts", tokenForRole(t, "bodeguero"), fiber.Map{"name": "x"})
	assert.Equal(t, http.StatusForbidden, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación WB
// ──────────────────────────────────────────────────────────────────────────────

func stocksWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Бренд", "Предмет", "Артикул продавца", "Артикул WB", "Баркод", "Размер вещи", "Всего находится на складах"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Atelier", "Худи", "HD-001", "123456", "2000000000011", "M", "7"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Atelier", "Худи", "HD-001", "no-num", "2000000000028", "L", "3"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestWBImport_Multipart(t *testing.T) {
	e := newAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "stocks.xlsx")
	require.NoError(t, err)
	_, err = part.Write(stocksWorkbook(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/wb/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(out))

	var result dto.ImportResultResponse
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Equal(t, "stocks.xlsx", result.Filename)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.WithErrors)

	// las filas quedan contadas en /metrics
	status, metricsOut := e.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(metricsOut), `atelier_wb_import_rows_total{status="error"} 1`)
	assert.Contains(t, string(metricsOut), `atelier_wb_import_rows_total{status="ok"} 1`)
}

func TestWBImport_SinArchivo(t *testing.T) {
	e := newAPI(t)
	status, out := e.do(t, http.MethodPost, "/api/wb/imports", tokenForRole(t, "bodeguero"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(out), "MISSING_FILE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth, salud y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthToken(t *testing.T) {
	e := newAPI(t)

	status, out := e.do(t, http.MethodPost, "/api/auth/token", "", fiber.Map{"admin_key": testAdminKey, "user_id": "ana", "role": "planificador"})
	require.Equal(t, http.StatusCreated, status, string(out))
	var tok dto.TokenResponse
	require.NoError(t, json.Unmarshal(out, &tok))
	assert.Equal(t, testExpMin*60, tok.ExpiresIn)

	status, _ = e.do(t, http.MethodGet, "/api/materials", "Bearer "+tok.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, out = e.do(t, http.MethodPost, "/api/auth/token", "", fiber.Map{"admin_key": "otra", "user_id": "ana", "role": "planificador"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(out), "UNAUTHORIZED")
}

func TestRutasProtegidas(t *testing.T) {
	e := newAPI(t)

	status, _ := e.do(t, http.MethodGet, "/api/materials", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, out := e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(out), "atelier-test"))
}
