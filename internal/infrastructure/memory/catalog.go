package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var (
	_ repository.MaterialRepository     = (*MaterialRepo)(nil)
	_ repository.LocationRepository     = (*LocationRepo)(nil)
	_ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
)

// MaterialRepo materiales en memoria.
type MaterialRepo struct{ h handle }

func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.materials[m.ID]; ok {
			return domain.ErrDuplicate
		}
		st.materials[m.ID] = *m
		st.touch(m.ID)
		return nil
	})
}

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.h.read(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MaterialRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Material, error) {
	out := make(map[string]*entity.Material, len(ids))
	err := r.h.read(func(st *state) error {
		for _, id := range ids {
			if m, ok := st.materials[id]; ok {
				out[id] = &m
			}
		}
		return nil
	})
	return out, err
}

func (r *MaterialRepo) List(_ context.Context, limit, offset int) ([]*entity.Material, error) {
	var list []*entity.Material
	err := r.h.read(func(st *state) error {
		for _, m := range st.materials {
			list = append(list, &m)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), err
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ h handle }

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.locations[l.ID]; ok {
			return domain.ErrDuplicate
		}
		st.locations[l.ID] = *l
		st.touch(l.ID)
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.h.read(func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	var list []*entity.Location
	err := r.h.read(func(st *state) error {
		for _, l := range st.locations {
			list = append(list, &l)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), err
}

// CounterpartyRepo contrapartes en memoria.
type CounterpartyRepo struct{ h handle }

func (r *CounterpartyRepo) Create(_ context.Context, cp *entity.Counterparty) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.counterparties[cp.ID]; ok {
			return domain.ErrDuplicate
		}
		st.counterparties[cp.ID] = *cp
		st.touch(cp.ID)
		return nil
	})
}

func (r *CounterpartyRepo) GetByID(_ context.Context, id string) (*entity.Counterparty, error) {
	var out *entity.Counterparty
	err := r.h.read(func(st *state) error {
		if cp, ok := st.counterparties[id]; ok {
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *CounterpartyRepo) List(_ context.Context, limit, offset int) ([]*entity.Counterparty, error) {
	var list []*entity.Counterparty
	err := r.h.read(func(st *state) error {
		for _, cp := range st.counterparties {
			list = append(list, &cp)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), err
}

// ProductRepo productos en memoria; el artículo es único.
type ProductRepo struct{ h handle }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.Article == p.Article {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		st.touch(p.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByArticle(_ context.Context, article string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.read(func(st *state) error {
		for _, p := range st.products {
			if p.Article == article {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.h.read(func(st *state) error {
		for _, p := range st.products {
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Article < list[j].Article })
	return paginate(list, limit, offset), err
}
