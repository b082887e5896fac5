package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/inventory"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro de movimientos en memoria (append-only).
type LedgerRepo struct{ h handle }

func copyEntry(e entity.LedgerEntry) *entity.LedgerEntry {
	e.Lines = slices.Clone(e.Lines)
	return &e
}

func (r *LedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	return r.h.write(func(st *state) error {
		for _, other := range st.ledger {
			if other.ID == e.ID {
				return domain.ErrDuplicate
			}
			if e.Kind == entity.LedgerKindWriteOff && other.Kind == entity.LedgerKindWriteOff &&
				e.BatchID != "" && other.BatchID == e.BatchID {
				return &domain.AlreadyWrittenOffError{BatchID: e.BatchID, EntryID: other.ID}
			}
		}
		for _, l := range e.Lines {
			if !l.Quantity.IsPositive() {
				return domain.ErrInvalidInput
			}
		}
		st.ledger = append(st.ledger, *copyEntry(*e))
		st.touch(e.ID)
		return nil
	})
}

func (r *LedgerRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.h.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.ID == id {
				out = copyEntry(e)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LedgerRepo) ListByLocation(_ context.Context, locationID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	err := r.h.read(func(st *state) error {
		for i := len(st.ledger) - 1; i >= 0; i-- {
			if st.ledger[i].Touches(locationID) {
				list = append(list, copyEntry(st.ledger[i]))
			}
		}
		return nil
	})
	return paginate(list, limit, offset), err
}

func (r *LedgerRepo) FindWriteOffByBatch(_ context.Context, batchID string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.h.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.Kind == entity.LedgerKindWriteOff && e.BatchID == batchID {
				out = copyEntry(e)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LedgerRepo) BalanceByLocation(_ context.Context, locationID string) (map[string]decimal.Decimal, error) {
	var balance map[string]decimal.Decimal
	err := r.h.read(func(st *state) error {
		entries := make([]*entity.LedgerEntry, 0, len(st.ledger))
		for i := range st.ledger {
			entries = append(entries, &st.ledger[i])
		}
		balance = inventory.NetBalance(locationID, entries)
		return nil
	})
	return balance, err
}
