package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.WBImportRepository = (*WBImportRepo)(nil)

// WBImportRepo importaciones de stock WB en memoria.
type WBImportRepo struct{ h handle }

func (r *WBImportRepo) CreateFile(_ context.Context, f *entity.ImportFile) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.importFiles[f.ID]; ok {
			return domain.ErrDuplicate
		}
		st.importFiles[f.ID] = *f
		st.touch(f.ID)
		return nil
	})
}

func (r *WBImportRepo) UpdateFile(_ context.Context, f *entity.ImportFile) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.importFiles[f.ID]; !ok {
			return domain.ErrNotFound
		}
		st.importFiles[f.ID] = *f
		return nil
	})
}

func (r *WBImportRepo) GetFile(_ context.Context, id string) (*entity.ImportFile, error) {
	var out *entity.ImportFile
	err := r.h.read(func(st *state) error {
		if f, ok := st.importFiles[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *WBImportRepo) ListFiles(_ context.Context, limit, offset int) ([]*entity.ImportFile, error) {
	var list []*entity.ImportFile
	var order map[string]int64
	err := r.h.read(func(st *state) error {
		order = st.created
		for _, f := range st.importFiles {
			list = append(list, &f)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return order[list[i].ID] > order[list[j].ID] })
	return paginate(list, limit, offset), err
}

func (r *WBImportRepo) CreateRow(_ context.Context, row *entity.ImportRow) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.importFiles[row.FileID]; !ok {
			return domain.ErrNotFound
		}
		cp := *row
		cp.Raw = slices.Clone(row.Raw)
		cp.Errors = slices.Clone(row.Errors)
		st.importRows = append(st.importRows, cp)
		return nil
	})
}

func (r *WBImportRepo) ListRows(_ context.Context, fileID string) ([]*entity.ImportRow, error) {
	var list []*entity.ImportRow
	err := r.h.read(func(st *state) error {
		for _, row := range st.importRows {
			if row.FileID == fileID {
				cp := row
				cp.Errors = slices.Clone(row.Errors)
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].RowNumber < list[j].RowNumber })
	return list, err
}

func (r *WBImportRepo) UpsertProduct(_ context.Context, p *entity.WBProduct) error {
	return r.h.write(func(st *state) error {
		if existing, ok := st.wbProducts[p.NmID]; ok {
			p.ID = existing.ID
			if p.Title == "" {
				p.Title = existing.Title
			}
		}
		st.wbProducts[p.NmID] = *p
		return nil
	})
}

func (r *WBImportRepo) UpsertBarcode(_ context.Context, b *entity.WBBarcode) error {
	return r.h.write(func(st *state) error {
		if existing, ok := st.wbBarcodes[b.Barcode]; ok {
			b.ID = existing.ID
		}
		st.wbBarcodes[b.Barcode] = *b
		return nil
	})
}

func (r *WBImportRepo) CreateSnapshot(_ context.Context, s *entity.WBStockSnapshot) error {
	return r.h.write(func(st *state) error {
		st.snapshots = append(st.snapshots, *s)
		return nil
	})
}

func (r *WBImportRepo) ListSnapshotsByFile(_ context.Context, fileID string) ([]*entity.WBStockSnapshot, error) {
	var list []*entity.WBStockSnapshot
	err := r.h.read(func(st *state) error {
		for _, s := range st.snapshots {
			if s.FileID == fileID {
				list = append(list, &s)
			}
		}
		return nil
	})
	return list, err
}

// WBProducts productos WB ordenados por código de vendedor (para tests y consultas).
func (r *WBImportRepo) WBProducts() []entity.WBProduct {
	var list []entity.WBProduct
	_ = r.h.read(func(st *state) error {
		for _, p := range st.wbProducts {
			list = append(list, p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].VendorCode < list[j].VendorCode })
	return list
}
