package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.MoneyAccountRepository     = (*MoneyAccountRepo)(nil)
	_ repository.MoneyCategoryRepository    = (*MoneyCategoryRepo)(nil)
	_ repository.MoneyTransactionRepository = (*MoneyTransactionRepo)(nil)
)

// MoneyAccountRepo cuentas de dinero sobre PostgreSQL.
type MoneyAccountRepo struct {
	q Querier
}

func NewMoneyAccountRepository(q Querier) *MoneyAccountRepo {
	return &MoneyAccountRepo{q: q}
}

func (r *MoneyAccountRepo) Create(ctx context.Context, a *entity.MoneyAccount) error {
	query := `INSERT INTO money_accounts (id, name, currency, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.Name, a.Currency, a.CreatedAt); err != nil {
		return fmt.Errorf("insert money account: %w", err)
	}
	return nil
}

func (r *MoneyAccountRepo) GetByID(ctx context.Context, id string) (*entity.MoneyAccount, error) {
	var a entity.MoneyAccount
	err := r.q.QueryRow(ctx, `SELECT id, name, currency, created_at FROM money_accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Currency, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get money account: %w", err)
	}
	return &a, nil
}

// List cuentas por nombre.
func (r *MoneyAccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.MoneyAccount, error) {
	query := `SELECT id, name, currency, created_at FROM money_accounts ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list money accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoneyAccount
	for rows.Next() {
		var a entity.MoneyAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Currency, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan money account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MoneyCategoryRepo partidas de gasto/ingreso sobre PostgreSQL.
type MoneyCategoryRepo struct {
	q Querier
}

func NewMoneyCategoryRepository(q Querier) *MoneyCategoryRepo {
	return &MoneyCategoryRepo{q: q}
}

// Create domain.ErrDuplicate si el nombre ya existe sin distinguir mayúsculas.
func (r *MoneyCategoryRepo) Create(ctx context.Context, c *entity.MoneyCategory) error {
	query := `INSERT INTO money_categories (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert money category: %w", err)
	}
	return nil
}

func (r *MoneyCategoryRepo) GetByID(ctx context.Context, id string) (*entity.MoneyCategory, error) {
	var c entity.MoneyCategory
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM money_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get money category: %w", err)
	}
	return &c, nil
}

func (r *MoneyCategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.MoneyCategory, error) {
	query := `SELECT id, name, created_at FROM money_categories ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list money categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoneyCategory
	for rows.Next() {
		var c entity.MoneyCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan money category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// MoneyTransactionRepo operaciones de dinero sobre PostgreSQL.
type MoneyTransactionRepo struct {
	q Querier
}

func NewMoneyTransactionRepository(q Querier) *MoneyTransactionRepo {
	return &MoneyTransactionRepo{q: q}
}

const moneyColumns = `id, kind, date, amount, currency, exchange_rate,
	COALESCE(from_account_id::text, ''), COALESCE(to_account_id::text, ''), COALESCE(order_id::text, ''),
	COALESCE(counterparty_id::text, ''), COALESCE(category_id::text, ''), comment, created_at`

func scanMoney(row pgx.Row) (*entity.MoneyTransaction, error) {
	var t entity.MoneyTransaction
	err := row.Scan(&t.ID, &t.Kind, &t.Date, &t.Amount, &t.Currency, &t.ExchangeRate,
		&t.FromAccountID, &t.ToAccountID, &t.OrderID, &t.CounterpartyID, &t.CategoryID, &t.Comment, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MoneyTransactionRepo) Create(ctx context.Context, t *entity.MoneyTransaction) error {
	query := `
		INSERT INTO money_transactions (id, kind, date, amount, currency, exchange_rate, from_account_id,
			to_account_id, order_id, counterparty_id, category_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Kind, t.Date, t.Amount, t.Currency, t.ExchangeRate,
		nullable(t.FromAccountID), nullable(t.ToAccountID), nullable(t.OrderID),
		nullable(t.CounterpartyID), nullable(t.CategoryID), t.Comment, t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert money transaction: %w", err)
	}
	return nil
}

func (r *MoneyTransactionRepo) GetByID(ctx context.Context, id string) (*entity.MoneyTransaction, error) {
	t, err := scanMoney(r.q.QueryRow(ctx, `SELECT `+moneyColumns+` FROM money_transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get money transaction: %w", err)
	}
	return t, nil
}

// List filtros vacíos no restringen; más recientes primero.
func (r *MoneyTransactionRepo) List(ctx context.Context, f repository.MoneyFilter, limit, offset int) ([]*entity.MoneyTransaction, error) {
	query := `
		SELECT ` + moneyColumns + `
		FROM money_transactions
		WHERE ($1 = '' OR from_account_id::text = $1 OR to_account_id::text = $1)
		  AND ($2 = '' OR order_id::text = $2)
		  AND ($3 = '' OR kind = $3)
		ORDER BY date DESC, seq DESC
		LIMIT $4 OFFSET $5`
	return r.list(ctx, query, f.AccountID, f.OrderID, f.Kind, limit, offset)
}

// ListByOrder operaciones ligadas al pedido en orden de registro.
func (r *MoneyTransactionRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.MoneyTransaction, error) {
	query := `SELECT ` + moneyColumns + ` FROM money_transactions WHERE order_id = $1 ORDER BY date, seq`
	return r.list(ctx, query, orderID)
}

func (r *MoneyTransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MoneyTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list money transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoneyTransaction
	for rows.Next() {
		t, err := scanMoney(rows)
		if err != nil {
			return nil, fmt.Errorf("scan money transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// AccountBalance Σ entradas − Σ salidas de la cuenta.
func (r *MoneyTransactionRepo) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN to_account_id = $1 THEN amount ELSE 0 END), 0)
		     - COALESCE(SUM(CASE WHEN from_account_id = $1 THEN amount ELSE 0 END), 0)
		FROM money_transactions
		WHERE from_account_id = $1 OR to_account_id = $1`
	var bal decimal.Decimal
	if err := r.q.QueryRow(ctx, query, accountID).Scan(&bal); err != nil {
		return decimal.Zero, fmt.Errorf("account balance: %w", err)
	}
	return bal, nil
}
