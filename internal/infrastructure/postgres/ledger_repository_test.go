package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// ─── Querier falso ──────────────────────────────────────────────────────────

// abortedTxQuerier simula una tx donde el INSERT violó un índice único:
// cualquier consulta posterior fallaría en PostgreSQL (25P02).
type abortedTxQuerier struct {
	execErr error
	execs   int
	queries int
}

func (q *abortedTxQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.execs++
	return pgconn.CommandTag{}, q.execErr
}

func (q *abortedTxQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.queries++
	return nil, errors.New("current transaction is aborted")
}

func (q *abortedTxQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.queries++
	return errRow{err: errors.New("current transaction is aborted")}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func writeOffEntry() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:             "e2",
		Kind:           entity.LedgerKindWriteOff,
		FromLocationID: "loc",
		BatchID:        "b1",
		Lines:          []entity.LedgerLine{{ID: "l1", MaterialID: "m1", Quantity: decimal.NewFromInt(1)}},
		CreatedAt:      time.Now(),
	}
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestLedgerCreate_SegundoDescargoNoConsultaLaTxAbortada(t *testing.T) {
	q := &abortedTxQuerier{execErr: &pgconn.PgError{Code: "23505", ConstraintName: ledgerWriteOffIndex}}

	err := NewLedgerRepository(q).Create(context.Background(), writeOffEntry())

	var already *domain.AlreadyWrittenOffError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "b1", already.BatchID)
	assert.Empty(t, already.EntryID)
	assert.ErrorIs(t, err, domain.ErrAlreadyWrittenOff)
	assert.Equal(t, 1, q.execs, "no inserta líneas")
	assert.Zero(t, q.queries, "no consulta dentro de la tx abortada")
}

func TestLedgerCreate_OtraViolacionUnicaNoEsDescargo(t *testing.T) {
	q := &abortedTxQuerier{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "ledger_entries_pkey"}}

	err := NewLedgerRepository(q).Create(context.Background(), writeOffEntry())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAlreadyWrittenOff)
}

func TestLedgerCreate_InsertaCabeceraYLineas(t *testing.T) {
	q := &abortedTxQuerier{}
	e := writeOffEntry()

	require.NoError(t, NewLedgerRepository(q).Create(context.Background(), e))
	assert.Equal(t, 2, q.execs)
	assert.Equal(t, "e2", e.Lines[0].EntryID)
}
