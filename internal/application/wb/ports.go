package wb

import (
	"context"
	"io"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// SheetReader lee la hoja activa de un libro como filas de celdas de texto.
type SheetReader interface {
	Rows(r io.Reader) ([][]string, error)
}

// ImportTxRunner ejecuta el volcado de filas en una transacción.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(repo repository.WBImportRepository) error) error
}

// ImportObserver cuenta filas importadas por estado (métricas).
type ImportObserver interface {
	ObserveImportRow(status string)
}

type nopObserver struct{}

func (nopObserver) ObserveImportRow(string) {}
