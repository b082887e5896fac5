package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.WBImportRepository = (*WBImportRepo)(nil)

// WBImportRepo importaciones de stock WB sobre PostgreSQL.
type WBImportRepo struct {
	q Querier
}

// NewWBImportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWBImportRepository(q Querier) *WBImportRepo {
	return &WBImportRepo{q: q}
}

const importFileColumns = `id, source, filename, status, error_log, uploaded_by, uploaded_at`

func scanImportFile(row pgx.Row) (*entity.ImportFile, error) {
	var f entity.ImportFile
	if err := row.Scan(&f.ID, &f.Source, &f.Filename, &f.Status, &f.ErrorLog, &f.UploadedBy, &f.UploadedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *WBImportRepo) CreateFile(ctx context.Context, f *entity.ImportFile) error {
	query := `
		INSERT INTO import_files (id, source, filename, status, error_log, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, f.ID, f.Source, f.Filename, f.Status, f.ErrorLog, f.UploadedBy, f.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert import file: %w", err)
	}
	return nil
}

func (r *WBImportRepo) UpdateFile(ctx context.Context, f *entity.ImportFile) error {
	_, err := r.q.Exec(ctx, `UPDATE import_files SET status = $2, error_log = $3 WHERE id = $1`, f.ID, f.Status, f.ErrorLog)
	if err != nil {
		return fmt.Errorf("update import file: %w", err)
	}
	return nil
}

func (r *WBImportRepo) GetFile(ctx context.Context, id string) (*entity.ImportFile, error) {
	f, err := scanImportFile(r.q.QueryRow(ctx, `SELECT `+importFileColumns+` FROM import_files WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import file: %w", err)
	}
	return f, nil
}

// ListFiles importaciones más recientes primero.
func (r *WBImportRepo) ListFiles(ctx context.Context, limit, offset int) ([]*entity.ImportFile, error) {
	query := `SELECT ` + importFileColumns + ` FROM import_files ORDER BY uploaded_at DESC, seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list import files: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportFile
	for rows.Next() {
		f, err := scanImportFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan import file: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *WBImportRepo) CreateRow(ctx context.Context, row *entity.ImportRow) error {
	errs := row.Errors
	if errs == nil {
		errs = []string{}
	}
	query := `
		INSERT INTO import_rows (id, file_id, row_number, raw, errors)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, row.ID, row.FileID, row.RowNumber, []byte(row.Raw), errs); err != nil {
		return fmt.Errorf("insert import row: %w", err)
	}
	return nil
}

// ListRows filas del archivo en orden de la hoja.
func (r *WBImportRepo) ListRows(ctx context.Context, fileID string) ([]*entity.ImportRow, error) {
	query := `SELECT id, file_id, row_number, raw, errors FROM import_rows WHERE file_id = $1 ORDER BY row_number`
	rows, err := r.q.Query(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("list import rows: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportRow
	for rows.Next() {
		var row entity.ImportRow
		var raw []byte
		if err := rows.Scan(&row.ID, &row.FileID, &row.RowNumber, &raw, &row.Errors); err != nil {
			return nil, fmt.Errorf("scan import row: %w", err)
		}
		row.Raw = raw
		list = append(list, &row)
	}
	return list, rows.Err()
}

// UpsertProduct inserta o actualiza por nm_id y deja en p.ID el id persistido.
func (r *WBImportRepo) UpsertProduct(ctx context.Context, p *entity.WBProduct) error {
	query := `
		INSERT INTO wb_products (id, nm_id, vendor_code, title, brand, subject)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (nm_id) DO UPDATE SET
			vendor_code = EXCLUDED.vendor_code,
			title = COALESCE(NULLIF(EXCLUDED.title, ''), wb_products.title),
			brand = EXCLUDED.brand,
			subject = EXCLUDED.subject
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, p.ID, p.NmID, p.VendorCode, p.Title, p.Brand, p.Subject).Scan(&p.ID); err != nil {
		return fmt.Errorf("upsert wb product: %w", err)
	}
	return nil
}

// UpsertBarcode inserta o actualiza por código de barras.
func (r *WBImportRepo) UpsertBarcode(ctx context.Context, b *entity.WBBarcode) error {
	query := `
		INSERT INTO wb_barcodes (id, wb_product_id, tech_size, barcode)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (barcode) DO UPDATE SET
			wb_product_id = EXCLUDED.wb_product_id,
			tech_size = EXCLUDED.tech_size
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, b.ID, b.WBProductID, b.TechSize, b.Barcode).Scan(&b.ID); err != nil {
		return fmt.Errorf("upsert wb barcode: %w", err)
	}
	return nil
}

func (r *WBImportRepo) CreateSnapshot(ctx context.Context, s *entity.WBStockSnapshot) error {
	query := `
		INSERT INTO wb_stock_snapshots (id, file_id, warehouse_name, nm_id, vendor_code, barcode, tech_size,
			quantity, in_way_to_client, in_way_from_client, quantity_full, loaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, s.ID, s.FileID, s.Warehouse, s.NmID, s.VendorCode, s.Barcode, s.TechSize,
		s.Quantity, s.InWayToClient, s.InWayFromClient, s.QuantityFull, s.LoadedAt)
	if err != nil {
		return fmt.Errorf("insert wb stock snapshot: %w", err)
	}
	return nil
}

// ListSnapshotsByFile fotos de stock de una importación en orden de carga.
func (r *WBImportRepo) ListSnapshotsByFile(ctx context.Context, fileID string) ([]*entity.WBStockSnapshot, error) {
	query := `
		SELECT id, file_id, warehouse_name, nm_id, vendor_code, barcode, tech_size,
			quantity, in_way_to_client, in_way_from_client, quantity_full, loaded_at
		FROM wb_stock_snapshots WHERE file_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("list wb stock snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.WBStockSnapshot
	for rows.Next() {
		var s entity.WBStockSnapshot
		if err := rows.Scan(&s.ID, &s.FileID, &s.Warehouse, &s.NmID, &s.VendorCode, &s.Barcode, &s.TechSize,
			&s.Quantity, &s.InWayToClient, &s.InWayFromClient, &s.QuantityFull, &s.LoadedAt); err != nil {
			return nil, fmt.Errorf("scan wb stock snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
