// Package finance cuentas de dinero, partidas y operaciones, y los pagos de cada pedido.
package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	money "github.com/jhoicas/Atelier-api/internal/domain/finance"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type UseCase struct {
	accountRepo      repository.MoneyAccountRepository
	categoryRepo     repository.MoneyCategoryRepository
	txRepo           repository.MoneyTransactionRepository
	orderRepo        repository.OrderRepository
	counterpartyRepo repository.CounterpartyRepository
}

func NewUseCase(
	accountRepo repository.MoneyAccountRepository,
	categoryRepo repository.MoneyCategoryRepository,
	txRepo repository.MoneyTransactionRepository,
	orderRepo repository.OrderRepository,
	counterpartyRepo repository.CounterpartyRepository,
) *UseCase {
	return &UseCase{
		accountRepo:      accountRepo,
		categoryRepo:     categoryRepo,
		txRepo:           txRepo,
		orderRepo:        orderRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

// ─── Cuentas ─────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateAccount(ctx context.Context, in dto.CreateMoneyAccountRequest) (*dto.MoneyAccountResponse, error) {
	name := strings.TrimSpace(in.Name)
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "RUB"
	}
	if name == "" || len(currency) != 3 {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.MoneyAccount{
		ID:        uuid.New().String(),
		Name:      name,
		Currency:  currency,
		CreatedAt: time.Now(),
	}
	if err := uc.accountRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAccountResponse(a), nil
}

func (uc *UseCase) ListAccounts(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.MoneyAccountResponse], error) {
	list, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MoneyAccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return &dto.ListResponse[dto.MoneyAccountResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// AccountBalance entradas menos salidas, en la moneda de la cuenta.
func (uc *UseCase) AccountBalance(ctx context.Context, accountID string) (*dto.AccountBalanceResponse, error) {
	a, err := uc.account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	bal, err := uc.txRepo.AccountBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &dto.AccountBalanceResponse{AccountID: a.ID, Name: a.Name, Currency: a.Currency, Balance: bal}, nil
}

func (uc *UseCase) account(ctx context.Context, id string) (*entity.MoneyAccount, error) {
	a, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// ─── Partidas ────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateMoneyCategoryRequest) (*dto.MoneyCategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.MoneyCategory{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.MoneyCategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

func (uc *UseCase) ListCategories(ctx context.Context, limit, offset int) (*dto.ListResponse[dto.MoneyCategoryResponse], error) {
	list, err := uc.categoryRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MoneyCategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.MoneyCategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return &dto.ListResponse[dto.MoneyCategoryResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ─── Operaciones ─────────────────────────────────────────────────────────────

// CreateTransaction registra una operación. Entrada lleva solo cuenta destino, gasto solo
// origen y traspaso ambas distintas; la moneda debe coincidir con la de las cuentas.
func (uc *UseCase) CreateTransaction(ctx context.Context, in dto.CreateMoneyTransactionRequest) (*dto.MoneyTransactionResponse, error) {
	switch in.Kind {
	case entity.MoneyKindIncome:
		if in.ToAccountID == "" || in.FromAccountID != "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.MoneyKindExpense:
		if in.FromAccountID == "" || in.ToAccountID != "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.MoneyKindTransfer:
		if in.FromAccountID == "" || in.ToAccountID == "" || in.FromAccountID == in.ToAccountID {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	amount := in.Amount.Round(money.MoneyScale)
	rate := decimal.NewFromInt(1)
	if in.ExchangeRate != nil {
		rate = in.ExchangeRate.Round(money.RateScale)
	}
	if !amount.IsPositive() || !rate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	for _, id := range []string{in.FromAccountID, in.ToAccountID} {
		if id == "" {
			continue
		}
		a, err := uc.account(ctx, id)
		if err != nil {
			return nil, err
		}
		if currency == "" {
			currency = a.Currency
		}
		if a.Currency != currency {
			return nil, domain.ErrInvalidInput
		}
	}

	if err := uc.requireLinks(ctx, in); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	t := &entity.MoneyTransaction{
		ID:             uuid.New().String(),
		Kind:           in.Kind,
		Date:           date,
		Amount:         amount,
		Currency:       currency,
		ExchangeRate:   rate,
		FromAccountID:  in.FromAccountID,
		ToAccountID:    in.ToAccountID,
		OrderID:        in.OrderID,
		CounterpartyID: in.CounterpartyID,
		CategoryID:     in.CategoryID,
		Comment:        in.Comment,
		CreatedAt:      time.Now(),
	}
	if err := uc.txRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return ToTransactionResponse(t), nil
}

func (uc *UseCase) requireLinks(ctx context.Context, in dto.CreateMoneyTransactionRequest) error {
	if in.OrderID != "" {
		o, err := uc.orderRepo.GetByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
	}
	if in.CounterpartyID != "" {
		cp, err := uc.counterpartyRepo.GetByID(ctx, in.CounterpartyID)
		if err != nil {
			return err
		}
		if cp == nil {
			return domain.ErrNotFound
		}
	}
	if in.CategoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (uc *UseCase) GetTransaction(ctx context.Context, id string) (*dto.MoneyTransactionResponse, error) {
	t, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return ToTransactionResponse(t), nil
}

// ListTransactions más recientes primero (fecha, luego registro).
func (uc *UseCase) ListTransactions(ctx context.Context, f dto.MoneyTransactionFilter, limit, offset int) (*dto.ListResponse[dto.MoneyTransactionResponse], error) {
	if f.Kind != "" && !entity.ValidMoneyKind(f.Kind) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.txRepo.List(ctx, repository.MoneyFilter{AccountID: f.AccountID, OrderID: f.OrderID, Kind: f.Kind}, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MoneyTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *ToTransactionResponse(t))
	}
	return &dto.ListResponse[dto.MoneyTransactionResponse]{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// OrderPayments total del pedido según sus líneas, lo pagado y lo pendiente.
func (uc *UseCase) OrderPayments(ctx context.Context, orderID string) (*dto.OrderPaymentsResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s := money.Settle(o, items, txs)
	out := &dto.OrderPaymentsResponse{
		OrderID:             o.ID,
		Currency:            o.Currency,
		TotalCurrency:       s.TotalCurrency,
		TotalRUB:            s.TotalRUB,
		PaidCurrency:        s.PaidCurrency,
		PaidRUB:             s.PaidRUB,
		OutstandingCurrency: s.OutstandingCurrency,
		OutstandingRUB:      s.OutstandingRUB,
		Transactions:        make([]dto.MoneyTransactionResponse, 0, len(txs)),
	}
	for _, t := range txs {
		out.Transactions = append(out.Transactions, *ToTransactionResponse(t))
	}
	return out, nil
}

func toAccountResponse(a *entity.MoneyAccount) *dto.MoneyAccountResponse {
	return &dto.MoneyAccountResponse{ID: a.ID, Name: a.Name, Currency: a.Currency, CreatedAt: a.CreatedAt}
}

// ToTransactionResponse mapea una operación a su DTO.
func ToTransactionResponse(t *entity.MoneyTransaction) *dto.MoneyTransactionResponse {
	return &dto.MoneyTransactionResponse{
		ID:             t.ID,
		Kind:           t.Kind,
		Date:           t.Date,
		Amount:         t.Amount,
		Currency:       t.Currency,
		ExchangeRate:   t.ExchangeRate,
		AmountRUB:      t.AmountRUB(),
		FromAccountID:  t.FromAccountID,
		ToAccountID:    t.ToAccountID,
		OrderID:        t.OrderID,
		CounterpartyID: t.CounterpartyID,
		CategoryID:     t.CategoryID,
		Comment:        t.Comment,
		CreatedAt:      t.CreatedAt,
	}
}
