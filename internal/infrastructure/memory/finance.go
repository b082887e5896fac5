package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/finance"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.MoneyAccountRepository     = (*MoneyAccountRepo)(nil)
	_ repository.MoneyCategoryRepository    = (*MoneyCategoryRepo)(nil)
	_ repository.MoneyTransactionRepository = (*MoneyTransactionRepo)(nil)
)

// MoneyAccountRepo cuentas de dinero en memoria.
type MoneyAccountRepo struct{ h handle }

func (r *MoneyAccountRepo) Create(_ context.Context, a *entity.MoneyAccount) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.accounts[a.ID]; ok {
			return domain.ErrDuplicate
		}
		st.accounts[a.ID] = *a
		st.touch(a.ID)
		return nil
	})
}

func (r *MoneyAccountRepo) GetByID(_ context.Context, id string) (*entity.MoneyAccount, error) {
	var out *entity.MoneyAccount
	err := r.h.read(func(st *state) error {
		if a, ok := st.accounts[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *MoneyAccountRepo) List(_ context.Context, limit, offset int) ([]*entity.MoneyAccount, error) {
	var list []*entity.MoneyAccount
	err := r.h.read(func(st *state) error {
		for _, a := range st.accounts {
			list = append(list, &a)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), err
}

// MoneyCategoryRepo partidas de gasto/ingreso en memoria; el nombre es único sin distinguir mayúsculas.
type MoneyCategoryRepo struct{ h handle }

func (r *MoneyCategoryRepo) Create(_ context.Context, c *entity.MoneyCategory) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.categories {
			if strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		st.touch(c.ID)
		return nil
	})
}

func (r *MoneyCategoryRepo) GetByID(_ context.Context, id string) (*entity.MoneyCategory, error) {
	var out *entity.MoneyCategory
	err := r.h.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *MoneyCategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.MoneyCategory, error) {
	var list []*entity.MoneyCategory
	err := r.h.read(func(st *state) error {
		for _, c := range st.categories {
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), err
}

// MoneyTransactionRepo operaciones de dinero en memoria.
type MoneyTransactionRepo struct{ h handle }

func (r *MoneyTransactionRepo) Create(_ context.Context, t *entity.MoneyTransaction) error {
	return r.h.write(func(st *state) error {
		for _, other := range st.money {
			if other.ID == t.ID {
				return domain.ErrDuplicate
			}
		}
		for _, id := range []string{t.FromAccountID, t.ToAccountID} {
			if _, ok := st.accounts[id]; id != "" && !ok {
				return domain.ErrNotFound
			}
		}
		st.money = append(st.money, *t)
		st.touch(t.ID)
		return nil
	})
}

func (r *MoneyTransactionRepo) GetByID(_ context.Context, id string) (*entity.MoneyTransaction, error) {
	var out *entity.MoneyTransaction
	err := r.h.read(func(st *state) error {
		for _, t := range st.money {
			if t.ID == id {
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MoneyTransactionRepo) filter(keep func(entity.MoneyTransaction) bool) ([]*entity.MoneyTransaction, map[string]int64, error) {
	var list []*entity.MoneyTransaction
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, t := range st.money {
			if keep(t) {
				list = append(list, &t)
			}
		}
		return nil
	})
	return list, order, err
}

func (r *MoneyTransactionRepo) List(_ context.Context, f repository.MoneyFilter, limit, offset int) ([]*entity.MoneyTransaction, error) {
	list, order, err := r.filter(func(t entity.MoneyTransaction) bool {
		if f.AccountID != "" && t.FromAccountID != f.AccountID && t.ToAccountID != f.AccountID {
			return false
		}
		if f.OrderID != "" && t.OrderID != f.OrderID {
			return false
		}
		return f.Kind == "" || t.Kind == f.Kind
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return order[list[i].ID] > order[list[j].ID]
	})
	return paginate(list, limit, offset), err
}

func (r *MoneyTransactionRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.MoneyTransaction, error) {
	list, _, err := r.filter(func(t entity.MoneyTransaction) bool { return t.OrderID == orderID })
	return list, err
}

func (r *MoneyTransactionRepo) AccountBalance(_ context.Context, accountID string) (decimal.Decimal, error) {
	list, _, err := r.filter(func(t entity.MoneyTransaction) bool {
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	})
	if err != nil {
		return decimal.Zero, err
	}
	return finance.AccountBalance(accountID, list), nil
}
