package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMoneyAccountRequest body para POST /api/finance/accounts.
type CreateMoneyAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// MoneyAccountResponse salida de una cuenta.
type MoneyAccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountBalanceResponse saldo de una cuenta en su moneda.
type AccountBalanceResponse struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
}

// CreateMoneyCategoryRequest body para POST /api/finance/categories.
type CreateMoneyCategoryRequest struct {
	Name string `json:"name"`
}

// MoneyCategoryResponse salida de una partida de gasto/ingreso.
type MoneyCategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMoneyTransactionRequest body para POST /api/finance/transactions.
// Currency vacía = la de la cuenta; ExchangeRate nulo = 1.
type CreateMoneyTransactionRequest struct {
	Kind           string           `json:"kind"`
	Date           time.Time        `json:"date"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency,omitempty"`
	ExchangeRate   *decimal.Decimal `json:"exchange_rate,omitempty"`
	FromAccountID  string           `json:"from_account_id,omitempty"`
	ToAccountID    string           `json:"to_account_id,omitempty"`
	OrderID        string           `json:"order_id,omitempty"`
	CounterpartyID string           `json:"counterparty_id,omitempty"`
	CategoryID     string           `json:"category_id,omitempty"`
	Comment        string           `json:"comment,omitempty"`
}

// MoneyTransactionFilter filtros de GET /api/finance/transactions.
type MoneyTransactionFilter struct {
	AccountID string `query:"account_id"`
	OrderID   string `query:"order_id"`
	Kind      string `query:"kind"`
}

// MoneyTransactionResponse salida de una operación de dinero.
type MoneyTransactionResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	AmountRUB      decimal.Decimal `json:"amount_rub"`
	FromAccountID  string          `json:"from_account_id,omitempty"`
	ToAccountID    string          `json:"to_account_id,omitempty"`
	OrderID        string          `json:"order_id,omitempty"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	CategoryID     string          `json:"category_id,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderPaymentsResponse total, pagado y pendiente de un pedido, con sus operaciones.
type OrderPaymentsResponse struct {
	OrderID             string                     `json:"order_id"`
	Currency            string                     `json:"currency"`
	TotalCurrency       decimal.Decimal            `json:"total_amount_currency"`
	TotalRUB            decimal.Decimal            `json:"total_amount_rub"`
	PaidCurrency        decimal.Decimal            `json:"paid_amount_currency"`
	PaidRUB             decimal.Decimal            `json:"paid_amount_rub"`
	OutstandingCurrency decimal.Decimal            `json:"outstanding_amount_currency"`
	OutstandingRUB      decimal.Decimal            `json:"outstanding_amount_rub"`
	Transactions        []MoneyTransactionResponse `json:"transactions"`
}
