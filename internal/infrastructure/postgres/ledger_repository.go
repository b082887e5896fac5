package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerWriteOffIndex = "ledger_entries_one_writeoff_per_batch"

// LedgerRepo libro de movimientos sobre PostgreSQL. Solo inserta: los asientos son inmutables.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const entryColumns = `id, kind, COALESCE(from_location_id::text, ''), COALESCE(to_location_id::text, ''),
	COALESCE(purchase_id::text, ''), COALESCE(batch_id::text, ''), comment, created_at`

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(&e.ID, &e.Kind, &e.FromLocationID, &e.ToLocationID, &e.PurchaseID, &e.BatchID, &e.Comment, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserta el asiento y sus líneas. Un segundo descargo de la misma partida viola el índice
// parcial y se informa como AlreadyWrittenOffError sin EntryID.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, kind, from_location_id, to_location_id, purchase_id, batch_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, e.ID, e.Kind, nullable(e.FromLocationID), nullable(e.ToLocationID),
		nullable(e.PurchaseID), nullable(e.BatchID), e.Comment, e.CreatedAt)
	if err != nil {
		// la tx quedó abortada: no se puede consultar el descargo existente en ella.
		if isUniqueViolation(err) && violatedConstraint(err) == ledgerWriteOffIndex {
			return &domain.AlreadyWrittenOffError{BatchID: e.BatchID}
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	lineQuery := `
		INSERT INTO ledger_lines (id, entry_id, material_id, quantity, unit_cost, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range e.Lines {
		l := &e.Lines[i]
		l.EntryID = e.ID
		if _, err := r.q.Exec(ctx, lineQuery, l.ID, l.EntryID, l.MaterialID, l.Quantity, l.UnitCost, i+1); err != nil {
			return fmt.Errorf("insert ledger line: %w", err)
		}
	}
	return nil
}

// GetByID asiento con sus líneas.
func (r *LedgerRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.LedgerEntry{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByLocation asientos que entran o salen de la ubicación, más recientes primero.
func (r *LedgerRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE from_location_id = $1 OR to_location_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// FindWriteOffByBatch descargo de la partida o nil.
func (r *LedgerRepo) FindWriteOffByBatch(ctx context.Context, batchID string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE batch_id = $1 AND kind = 'writeoff'`
	e, err := scanEntry(r.q.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find writeoff by batch: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.LedgerEntry{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// BalanceByLocation Σ entradas − Σ salidas por material. Los materiales con saldo cero se omiten.
func (r *LedgerRepo) BalanceByLocation(ctx context.Context, locationID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT l.material_id,
		       SUM(CASE WHEN e.to_location_id = $1 THEN l.quantity ELSE -l.quantity END) AS balance
		FROM ledger_lines l
		JOIN ledger_entries e ON e.id = l.entry_id
		WHERE e.from_location_id = $1 OR e.to_location_id = $1
		GROUP BY l.material_id`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("balance by location: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var materialID string
		var qty decimal.Decimal
		if err := rows.Scan(&materialID, &qty); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		if !qty.IsZero() {
			out[materialID] = qty
		}
	}
	return out, rows.Err()
}

func (r *LedgerRepo) loadLines(ctx context.Context, entries []*entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	byID := make(map[string]*entity.LedgerEntry, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	query := `
		SELECT id, entry_id, material_id, quantity, unit_cost
		FROM ledger_lines WHERE entry_id = ANY($1::uuid[])
		ORDER BY entry_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list ledger lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.LedgerLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.MaterialID, &l.Quantity, &l.UnitCost); err != nil {
			return fmt.Errorf("scan ledger line: %w", err)
		}
		e := byID[l.EntryID]
		e.Lines = append(e.Lines, l)
	}
	return rows.Err()
}
