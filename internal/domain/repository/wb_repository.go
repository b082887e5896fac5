package repository

import (
	"context"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// WBImportRepository define el puerto de persistencia de la importación de stock WB.
type WBImportRepository interface {
	CreateFile(ctx context.Context, file *entity.ImportFile) error
	UpdateFile(ctx context.Context, file *entity.ImportFile) error
	GetFile(ctx context.Context, id string) (*entity.ImportFile, error)
	ListFiles(ctx context.Context, limit, offset int) ([]*entity.ImportFile, error)
	CreateRow(ctx context.Context, row *entity.ImportRow) error
	ListRows(ctx context.Context, fileID string) ([]*entity.ImportRow, error)
	// UpsertProduct inserta o actualiza por nm_id; deja en p.ID el id persistido.
	UpsertProduct(ctx context.Context, p *entity.WBProduct) error
	// UpsertBarcode inserta o actualiza por código de barras.
	UpsertBarcode(ctx context.Context, b *entity.WBBarcode) error
	CreateSnapshot(ctx context.Context, s *entity.WBStockSnapshot) error
	ListSnapshotsByFile(ctx context.Context, fileID string) ([]*entity.WBStockSnapshot, error)
}
