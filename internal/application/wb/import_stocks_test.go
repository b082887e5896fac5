package wb_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jhoicas/Atelier-api/internal/application/wb"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/jhoicas/Atelier-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader devuelve filas fijas sin leer el contenido.
type fakeReader struct {
	rows [][]string
	err  error
}

func (f fakeReader) Rows(io.Reader) ([][]string, error) { return f.rows, f.err }

type countingObserver map[string]int

func (c countingObserver) ObserveImportRow(status string) { c[status]++ }

func newImport(rows [][]string, readErr error) (*wb.ImportStocksUseCase, *memory.Store, countingObserver) {
	s := memory.NewStore()
	obs := countingObserver{}
	uc := wb.NewImportStocksUseCase(s, s.WBImports(), fakeReader{rows: rows, err: readErr}, obs, nil)
	return uc, s, obs
}

func TestImportStocks_Aplica(t *testing.T) {
	ctx := context.Background()
	rows := [][]string{
		{"Отчет"},
		stockHeader,
		{"Atelier", "Худи", "HD-001", "123456", "0,5", "2000000000011", "M", "2", "1", "15"},
		{"", "", "", "", "", "", "", "", "", ""},
		{"Atelier", "Худи", "HD-001", "123456", "", "2000000000028", "L", "0", "0", "7.0"},
		{"Atelier", "Худи", "", "abc", "", "", "S", "", "", "3"},
	}
	uc, s, obs := newImport(rows, nil)

	res, err := uc.ImportStocks(ctx, "stocks.xlsx", "user-1", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, entity.ImportStatusApplied, res.Status)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.WithErrors)
	assert.Equal(t, "Procesadas 2 filas, 1 con errores", res.Summary)
	assert.Equal(t, 2, obs[wb.RowStatusOK])
	assert.Equal(t, 1, obs[wb.RowStatusError])

	repo := s.WBImports()
	file, err := repo.GetFile(ctx, res.FileID)
	require.NoError(t, err)
	assert.Equal(t, entity.ImportStatusApplied, file.Status)
	assert.Equal(t, "user-1", file.UploadedBy)

	importRows, err := repo.ListRows(ctx, res.FileID)
	require.NoError(t, err)
	require.Len(t, importRows, 3, "la fila vacía no se registra")
	assert.Equal(t, 3, importRows[0].RowNumber)
	assert.True(t, importRows[0].Valid())
	assert.False(t, importRows[2].Valid())
	assert.Len(t, importRows[2].Errors, 3)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(importRows[0].Raw, &raw))
	assert.Equal(t, "HD-001", raw[wb.FieldVendorCode])
	assert.EqualValues(t, 0.5, raw[wb.FieldVolume])

	snaps, err := repo.ListSnapshotsByFile(ctx, res.FileID)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 15, snaps[0].QuantityFull)
	assert.Equal(t, 15, snaps[0].Quantity)
	assert.Equal(t, 2, snaps[0].InWayToClient)
	assert.Equal(t, 7, snaps[1].QuantityFull)

	products := repo.WBProducts()
	require.Len(t, products, 1, "mismo nm_id, un solo producto")
	assert.Equal(t, int64(123456), products[0].NmID)
}

func TestImportStocks_EncabezadosNoReconocidos(t *testing.T) {
	ctx := context.Background()
	uc, s, _ := newImport([][]string{{"a", "b", "c"}, {"1", "2", "3"}}, nil)

	_, err := uc.ImportStocks(ctx, "otro.xlsx", "user-1", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	files, err := s.WBImports().ListFiles(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, entity.ImportStatusError, files[0].Status)
	assert.Contains(t, files[0].ErrorLog, "no se encontraron")
}

func TestImportStocks_ArchivoIlegible(t *testing.T) {
	ctx := context.Background()
	uc, s, _ := newImport(nil, errors.New("zip: not a valid zip file"))

	_, err := uc.ImportStocks(ctx, "roto.xlsx", "user-1", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	files, err := s.WBImports().ListFiles(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, entity.ImportStatusError, files[0].Status)
	assert.Contains(t, files[0].ErrorLog, "zip")
}

func TestImportStocks_ReimportarActualizaSinDuplicar(t *testing.T) {
	ctx := context.Background()
	rows := [][]string{
		stockHeader,
		{"Atelier", "Худи", "HD-001", "123456", "", "2000000000011", "M", "0", "0", "4"},
	}
	uc, s, _ := newImport(rows, nil)

	_, err := uc.ImportStocks(ctx, "a.xlsx", "u", strings.NewReader(""))
	require.NoError(t, err)
	second, err := uc.ImportStocks(ctx, "b.xlsx", "u", strings.NewReader(""))
	require.NoError(t, err)

	assert.Len(t, s.WBImports().WBProducts(), 1)
	snaps, err := s.WBImports().ListSnapshotsByFile(ctx, second.FileID)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

// failingCommit corre el volcado y luego falla como un commit rechazado.
type failingCommit struct{ s *memory.Store }

func (f failingCommit) RunImport(ctx context.Context, fn func(repo repository.WBImportRepository) error) error {
	return f.s.RunImport(ctx, func(repo repository.WBImportRepository) error {
		if err := fn(repo); err != nil {
			return err
		}
		return errors.New("commit rechazado")
	})
}

func TestImportStocks_RollbackNoCuentaFilas(t *testing.T) {
	ctx := context.Background()
	rows := [][]string{
		stockHeader,
		{"Atelier", "Худи", "HD-001", "123456", "", "2000000000011", "M", "0", "0", "4"},
		{"Atelier", "Худи", "", "", "", "", "S", "", "", "3"},
	}
	s := memory.NewStore()
	obs := countingObserver{}
	uc := wb.NewImportStocksUseCase(failingCommit{s: s}, s.WBImports(), fakeReader{rows: rows}, obs, nil)

	_, err := uc.ImportStocks(ctx, "stocks.xlsx", "u", strings.NewReader(""))
	require.Error(t, err)
	assert.Empty(t, obs, "una importación revertida no suma filas")
	assert.Empty(t, s.WBImports().WBProducts())

	files, err := s.WBImports().ListFiles(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, entity.ImportStatusError, files[0].Status)
}
