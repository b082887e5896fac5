// Package bootstrap arma los casos de uso sobre el driver de almacenamiento configurado.
// Lo comparten la API y las herramientas de línea de comandos.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/Atelier-api/internal/application/auth"
	"github.com/jhoicas/Atelier-api/internal/application/finance"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/application/production"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
	"github.com/jhoicas/Atelier-api/internal/application/usecase"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/excel"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Atelier-api/pkg/config"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

// TxRunner transacciones que necesitan los casos de uso; lo implementan ambos drivers.
type TxRunner interface {
	inventory.TxRunner
	production.WriteOffTxRunner
	production.RecipeTxRunner
	production.OrderTxRunner
	wb.ImportTxRunner
	stock.TxRunner
}

// Repos repositorios fuera de transacción.
type Repos struct {
	Materials      repository.MaterialRepository
	Locations      repository.LocationRepository
	Counterparties repository.CounterpartyRepository
	Products       repository.ProductRepository
	Recipes        repository.RecipeRepository
	Orders         repository.OrderRepository
	Batches        repository.BatchRepository
	Purchases      repository.PurchaseRepository
	Ledger         repository.LedgerRepository
	WBImports      repository.WBImportRepository
	Stock          repository.StockRepository
	Supplies       repository.SupplyRepository
	Accounts       repository.MoneyAccountRepository
	Categories     repository.MoneyCategoryRepository
	Money          repository.MoneyTransactionRepository
}

// Services casos de uso listos para los puntos de entrada.
type Services struct {
	Metrics        *metrics.Metrics
	Catalog        *usecase.CatalogUseCase
	RecordMovement *inventory.RecordMovementUseCase
	Balance        *inventory.BalanceUseCase
	Purchase       *inventory.PurchaseUseCase
	Act            *inventory.ActUseCase
	Recipe         *production.RecipeUseCase
	Order          *production.OrderUseCase
	WriteOff       *production.WriteOffUseCase
	WBImport       *wb.ImportStocksUseCase
	Stock          *stock.MovementUseCase
	Supply         *stock.SupplyUseCase
	Finance        *finance.UseCase
	Auth           *auth.AuthUseCase
}

// Open abre el almacenamiento (memory o postgres, con migraciones goose si AutoMigrate)
// y arma los servicios. close libera el pool.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (svc *Services, closeFn func(), err error) {
	var (
		tx    TxRunner
		repos Repos
	)
	closeFn = func() {}

	switch cfg.App.StorageDriver {
	case config.StorageMemory:
		s := memory.NewStore()
		tx = s
		repos = Repos{
			Materials:      s.Materials(),
			Locations:      s.Locations(),
			Counterparties: s.Counterparties(),
			Products:       s.Products(),
			Recipes:        s.Recipes(),
			Orders:         s.Orders(),
			Batches:        s.Batches(),
			Purchases:      s.Purchases(),
			Ledger:         s.Ledger(),
			WBImports:      s.WBImports(),
			Stock:          s.Stock(),
			Supplies:       s.Supplies(),
			Accounts:       s.MoneyAccounts(),
			Categories:     s.MoneyCategories(),
			Money:          s.MoneyTransactions(),
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al detener el proceso")
	case config.StoragePostgres:
		if cfg.App.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
				return nil, nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		closeFn = pool.Close
		tx = postgres.NewTxRunner(pool)
		repos = Repos{
			Materials:      postgres.NewMaterialRepository(pool),
			Locations:      postgres.NewLocationRepository(pool),
			Counterparties: postgres.NewCounterpartyRepository(pool),
			Products:       postgres.NewProductRepository(pool),
			Recipes:        postgres.NewRecipeRepository(pool),
			Orders:         postgres.NewOrderRepository(pool),
			Batches:        postgres.NewBatchRepository(pool),
			Purchases:      postgres.NewPurchaseRepository(pool),
			Ledger:         postgres.NewLedgerRepository(pool),
			WBImports:      postgres.NewWBImportRepository(pool),
			Stock:          postgres.NewStockRepository(pool),
			Supplies:       postgres.NewSupplyRepository(pool),
			Accounts:       postgres.NewMoneyAccountRepository(pool),
			Categories:     postgres.NewMoneyCategoryRepository(pool),
			Money:          postgres.NewMoneyTransactionRepository(pool),
		}
	default:
		return nil, nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.App.StorageDriver)
	}

	return Build(cfg, log, tx, repos), closeFn, nil
}

// Build arma los casos de uso sobre un almacenamiento ya abierto.
func Build(cfg *config.Config, log *logger.Logger, tx TxRunner, r Repos) *Services {
	m := metrics.New()
	resolver := production.NewRecipeResolver(r.Recipes, r.Products)
	return &Services{
		Metrics:        m,
		Catalog:        usecase.NewCatalogUseCase(r.Materials, r.Locations, r.Counterparties, r.Products),
		RecordMovement: inventory.NewRecordMovementUseCase(tx, r.Materials, r.Locations),
		Balance:        inventory.NewBalanceUseCase(r.Ledger, r.Materials, r.Locations, excel.BalanceWriter{}),
		Purchase:       inventory.NewPurchaseUseCase(tx, r.Purchases, r.Counterparties, r.Materials, r.Locations),
		Act:            inventory.NewActUseCase(r.Ledger, r.Materials, r.Locations, pdf.NewMarotoActGenerator(cfg.App.Name)),
		Recipe:         production.NewRecipeUseCase(tx, r.Recipes, r.Products, r.Materials),
		Order:          production.NewOrderUseCase(tx, r.Orders, r.Batches, r.Products, r.Recipes, r.Counterparties),
		WriteOff:       production.NewWriteOffUseCase(tx, r.Batches, r.Locations, r.Materials, resolver, m, log.Component("writeoff")),
		WBImport:       wb.NewImportStocksUseCase(tx, r.WBImports, excel.SheetReader{}, m, log.Component("wb_import")),
		Stock:          stock.NewMovementUseCase(tx, r.Stock, r.Batches, r.Products, r.Locations, excel.StockBalanceWriter{}),
		Supply:         stock.NewSupplyUseCase(tx, r.Supplies, r.Orders, r.Batches, r.Locations, log.Component("supply")),
		Finance:        finance.NewUseCase(r.Accounts, r.Categories, r.Money, r.Orders, r.Counterparties),
		Auth: auth.NewAuthUseCase(cfg.App.AdminKeyHash, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
	}
}
