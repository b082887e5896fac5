package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras de insumos en memoria.
type PurchaseRepo struct{ h handle }

func copyPurchase(p entity.Purchase) *entity.Purchase {
	p.Items = slices.Clone(p.Items)
	return &p
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.purchases[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.purchases[p.ID] = *copyPurchase(*p)
		st.touch(p.ID)
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.h.read(func(st *state) error {
		if p, ok := st.purchases[id]; ok {
			out = copyPurchase(p)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) List(_ context.Context, limit, offset int) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, p := range st.purchases {
			list = append(list, copyPurchase(p))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return order[list[i].ID] > order[list[j].ID]
	})
	return paginate(list, limit, offset), err
}

// LastUnitPrice compra más reciente por fecha; a igual fecha gana la registrada después
// y, dentro de una compra, la última línea del material.
func (r *PurchaseRepo) LastUnitPrice(_ context.Context, materialID string) (decimal.Decimal, bool, error) {
	var (
		best    *entity.Purchase
		bestSeq int64
		price   decimal.Decimal
		found   bool
	)
	err := r.h.read(func(st *state) error {
		for _, p := range st.purchases {
			idx := -1
			for i, it := range p.Items {
				if it.MaterialID == materialID {
					idx = i
				}
			}
			if idx < 0 {
				continue
			}
			seq := st.created[p.ID]
			if best == nil || p.Date.After(best.Date) || (p.Date.Equal(best.Date) && seq > bestSeq) {
				pc := p
				best, bestSeq = &pc, seq
				price = p.Items[idx].UnitPrice
				found = true
			}
		}
		return nil
	})
	return price, found, err
}
