package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var (
	_ repository.StockRepository  = (*StockRepo)(nil)
	_ repository.SupplyRepository = (*SupplyRepo)(nil)
)

// StockRepo movimientos de mercadería en memoria (append-only).
type StockRepo struct{ h handle }

func copyMovement(m entity.StockMovement) *entity.StockMovement {
	m.Items = slices.Clone(m.Items)
	return &m
}

func (r *StockRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.h.write(func(st *state) error {
		for _, other := range st.stock {
			if other.ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		for _, it := range m.Items {
			if _, ok := st.batches[it.BatchID]; !ok {
				return domain.ErrNotFound
			}
		}
		st.stock = append(st.stock, *copyMovement(*m))
		st.touch(m.ID)
		return nil
	})
}

func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.h.read(func(st *state) error {
		for _, m := range st.stock {
			if m.ID == id {
				out = copyMovement(m)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) List(_ context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := r.h.read(func(st *state) error {
		for i := len(st.stock) - 1; i >= 0; i-- {
			list = append(list, copyMovement(st.stock[i]))
		}
		return nil
	})
	return paginate(list, limit, offset), err
}

func (r *StockRepo) ListForBalance(_ context.Context, locationID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := r.h.read(func(st *state) error {
		for _, m := range st.stock {
			if locationID == "" || m.Touches(locationID) {
				list = append(list, copyMovement(m))
			}
		}
		return nil
	})
	return list, err
}

// SupplyRepo entregas en memoria.
type SupplyRepo struct{ h handle }

func copySupply(s entity.Supply) *entity.Supply {
	s.Items = slices.Clone(s.Items)
	return &s
}

func (r *SupplyRepo) Create(_ context.Context, s *entity.Supply) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.supplies[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.orders[s.OrderID]; !ok {
			return domain.ErrNotFound
		}
		st.supplies[s.ID] = *copySupply(*s)
		st.touch(s.ID)
		return nil
	})
}

func (r *SupplyRepo) GetByID(_ context.Context, id string) (*entity.Supply, error) {
	var out *entity.Supply
	err := r.h.read(func(st *state) error {
		if s, ok := st.supplies[id]; ok {
			out = copySupply(s)
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual a GetByID: la transacción en memoria ya es exclusiva.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.GetByID(ctx, id)
}

func (r *SupplyRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Supply, error) {
	var list []*entity.Supply
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, s := range st.supplies {
			if s.OrderID == orderID {
				list = append(list, copySupply(s))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return order[list[i].ID] < order[list[j].ID]
	})
	return list, err
}

func (r *SupplyRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.h.write(func(st *state) error {
		s, ok := st.supplies[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Status = status
		st.supplies[id] = s
		return nil
	})
}

func (r *SupplyRepo) ShippedByBatch(_ context.Context, orderID string) (map[string]int, error) {
	out := make(map[string]int)
	err := r.h.read(func(st *state) error {
		for _, s := range st.supplies {
			if s.OrderID != orderID {
				continue
			}
			for _, it := range s.Items {
				out[it.BatchID] += it.Quantity
			}
		}
		return nil
	})
	return out, err
}
