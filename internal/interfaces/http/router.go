package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Atelier-api/internal/application/auth"
	"github.com/jhoicas/Atelier-api/internal/application/finance"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
	"github.com/jhoicas/Atelier-api/internal/application/usecase"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	CatalogUC      *usecase.CatalogUseCase
	RecordMovement *inventory.RecordMovementUseCase
	BalanceUC      *inventory.BalanceUseCase
	PurchaseUC     *inventory.PurchaseUseCase
	ActUC          *inventory.ActUseCase
	RecipeUC       *production.RecipeUseCase
	OrderUC        *production.OrderUseCase
	WriteOffUC     *production.WriteOffUseCase
	WBImportUC     *wb.ImportStocksUseCase
	StockUC        *stock.MovementUseCase
	SupplyUC       *stock.SupplyUseCase
	FinanceUC      *finance.UseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	Metrics        http.Handler // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/token", authHandler.IssueToken)

	// Rutas protegidas (requieren Bearer Token). Lectura: cualquier rol.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	planner := RequireRole(entity.RolePlanificador)
	storekeeper := RequireRole(entity.RoleBodeguero)
	admin := RequireRole(entity.RoleAdmin)

	// Catálogo
	catalog := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/materials", catalog.ListMaterials)
	protected.Get("/materials/:id", catalog.GetMaterial)
	protected.Post("/materials", admin, catalog.CreateMaterial)
	protected.Get("/locations", catalog.ListLocations)
	protected.Get("/locations/:id", catalog.GetLocation)
	protected.Post("/locations", admin, catalog.CreateLocation)
	protected.Get("/counterparties", catalog.ListCounterparties)
	protected.Get("/counterparties/:id", catalog.GetCounterparty)
	protected.Post("/counterparties", admin, catalog.CreateCounterparty)
	protected.Get("/products", catalog.ListProducts)
	protected.Get("/products/:id", catalog.GetProduct)
	protected.Post("/products", admin, catalog.CreateProduct)

	// Fichas técnicas, pedidos y descargos
	prod := NewProductionHandler(deps.RecipeUC, deps.OrderUC, deps.WriteOffUC)
	protected.Get("/products/:id/recipes", prod.ListProductRecipes)
	protected.Post("/recipes", planner, prod.CreateRecipe)
	protected.Get("/recipes/:id", prod.GetRecipe)
	protected.Post("/recipes/:id/default", planner, prod.SetDefaultRecipe)
	protected.Post("/orders", planner, prod.CreateOrder)
	protected.Get("/orders", prod.ListOrders)
	protected.Get("/orders/:id", prod.GetOrder)
	protected.Get("/orders/:id/batches", prod.ListOrderBatches)
	protected.Post("/orders/:id/items", planner, prod.AddOrderItem)
	protected.Get("/batches/:id", prod.GetBatch)
	protected.Post("/batches/:id/writeoff", planner, prod.WriteOff)

	// Libro de movimientos, saldos y compras
	ledger := NewLedgerHandler(deps.RecordMovement, deps.BalanceUC, deps.PurchaseUC, deps.ActUC)
	protected.Post("/ledger/entries", storekeeper, ledger.RecordMovement)
	protected.Get("/ledger/entries/:id", ledger.GetEntry)
	protected.Get("/ledger/entries/:id/pdf", ledger.EntryPDF)
	protected.Get("/locations/:id/entries", ledger.ListLocationEntries)
	protected.Get("/locations/:id/balance", ledger.Balance)
	protected.Post("/purchases", storekeeper, ledger.CreatePurchase)
	protected.Get("/purchases", ledger.ListPurchases)
	protected.Get("/purchases/:id", ledger.GetPurchase)

	// Mercadería terminada y entregas
	goods := NewStockHandler(deps.StockUC, deps.SupplyUC)
	protected.Post("/stock/movements", storekeeper, goods.RecordMovement)
	protected.Get("/stock/movements", goods.ListMovements)
	protected.Get("/stock/movements/:id", goods.GetMovement)
	protected.Get("/stock/balance", goods.Balance)
	protected.Post("/orders/:id/supplies", storekeeper, goods.CreateSupply)
	protected.Get("/orders/:id/supplies", goods.ListOrderSupplies)
	protected.Get("/supplies/:id", goods.GetSupply)
	protected.Post("/supplies/:id/status", storekeeper, goods.UpdateSupplyStatus)

	// Finanzas: escritura solo admin
	money := NewFinanceHandler(deps.FinanceUC)
	protected.Post("/finance/accounts", admin, money.CreateAccount)
	protected.Get("/finance/accounts", money.ListAccounts)
	protected.Get("/finance/accounts/:id/balance", money.AccountBalance)
	protected.Post("/finance/categories", admin, money.CreateCategory)
	protected.Get("/finance/categories", money.ListCategories)
	protected.Post("/finance/transactions", admin, money.CreateTransaction)
	protected.Get("/finance/transactions", money.ListTransactions)
	protected.Get("/finance/transactions/:id", money.GetTransaction)
	protected.Get("/orders/:id/payments", money.OrderPayments)

	// Wildberries
	wbHandler := NewWBHandler(deps.WBImportUC)
	protected.Post("/wb/imports", storekeeper, wbHandler.ImportStocks)
}
