package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.OrderRepository = (*OrderRepo)(nil)
	_ repository.BatchRepository = (*BatchRepo)(nil)
)

// OrderRepo pedidos en memoria; el número es único.
type OrderRepo struct{ h handle }

func (r *OrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.orders {
			if other.Number == o.Number {
				return domain.ErrDuplicate
			}
		}
		st.orders[o.ID] = *o
		st.touch(o.ID)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.h.read(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, o := range st.orders {
			list = append(list, &o)
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

func (r *OrderRepo) AddItem(_ context.Context, it *entity.OrderItem) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.orders[it.OrderID]; !ok {
			return domain.ErrNotFound
		}
		if b, ok := st.batches[it.BatchID]; !ok || b.OrderID != it.OrderID {
			return domain.ErrNotFound
		}
		st.orderItems = append(st.orderItems, *it)
		return nil
	})
}

func (r *OrderRepo) ListItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var list []*entity.OrderItem
	err := r.h.read(func(st *state) error {
		for _, it := range st.orderItems {
			if it.OrderID == orderID {
				list = append(list, &it)
			}
		}
		return nil
	})
	return list, err
}

// BatchRepo partidas en memoria.
type BatchRepo struct{ h handle }

func (r *BatchRepo) Create(_ context.Context, b *entity.ProductionBatch) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.batches[b.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.orders[b.OrderID]; !ok {
			return domain.ErrNotFound
		}
		st.batches[b.ID] = *b
		st.touch(b.ID)
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.ProductionBatch, error) {
	var out *entity.ProductionBatch
	err := r.h.read(func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual a GetByID: la transacción en memoria ya tiene el lock exclusivo.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.ProductionBatch, error) {
	var list []*entity.ProductionBatch
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, b := range st.batches {
			if b.OrderID == orderID {
				list = append(list, &b)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return order[list[i].ID] < order[list[j].ID] })
	return list, err
}

func (r *BatchRepo) UpdateMaterialCost(_ context.Context, batchID string, total, perUnit decimal.Decimal) error {
	return r.h.write(func(st *state) error {
		b, ok := st.batches[batchID]
		if !ok {
			return domain.ErrNotFound
		}
		b.MaterialCostTotal = decimal.NewNullDecimal(total)
		b.MaterialCostPerUnit = decimal.NewNullDecimal(perUnit)
		st.batches[batchID] = b
		return nil
	})
}
