package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var (
	_ repository.StockRepository  = (*StockRepo)(nil)
	_ repository.SupplyRepository = (*SupplyRepo)(nil)
)

// StockRepo documentos de mercadería terminada. Solo inserta, igual que el libro de materiales.
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const movementColumns = `id, kind, COALESCE(from_location_id::text, ''), COALESCE(to_location_id::text, ''),
	COALESCE(supply_id::text, ''), comment, created_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.Kind, &m.FromLocationID, &m.ToLocationID, &m.SupplyID, &m.Comment, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta el documento y sus líneas. Partida inexistente = domain.ErrNotFound.
func (r *StockRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, kind, from_location_id, to_location_id, supply_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Kind, nullable(m.FromLocationID), nullable(m.ToLocationID),
		nullable(m.SupplyID), m.Comment, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	itemQuery := `
		INSERT INTO stock_movement_items (id, movement_id, batch_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range m.Items {
		it := &m.Items[i]
		it.MovementID = m.ID
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.MovementID, it.BatchID, it.Quantity, i+1); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert stock movement item: %w", err)
		}
	}
	return nil
}

func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.StockMovement{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// List más recientes primero.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY seq DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListForBalance documentos que tocan la ubicación (todas si vacía) en orden de registro:
// el recuento depende del orden.
func (r *StockRepo) ListForBalance(ctx context.Context, locationID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE $1 = '' OR from_location_id::text = $1 OR to_location_id::text = $1
		ORDER BY seq`
	return r.list(ctx, query, locationID)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StockRepo) loadItems(ctx context.Context, movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	byID := make(map[string]*entity.StockMovement, len(movements))
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}
	query := `
		SELECT id, movement_id, batch_id, quantity
		FROM stock_movement_items WHERE movement_id = ANY($1::uuid[])
		ORDER BY movement_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list stock movement items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StockMovementItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.BatchID, &it.Quantity); err != nil {
			return fmt.Errorf("scan stock movement item: %w", err)
		}
		m := byID[it.MovementID]
		m.Items = append(m.Items, it)
	}
	return rows.Err()
}

// SupplyRepo entregas de partidas sobre PostgreSQL.
type SupplyRepo struct {
	q Querier
}

func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, order_id, number, date, status, created_at`

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	if err := row.Scan(&s.ID, &s.OrderID, &s.Number, &s.Date, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la entrega con sus líneas.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, order_id, number, date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.OrderID, s.Number, s.Date, s.Status, s.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	itemQuery := `
		INSERT INTO supply_items (id, supply_id, batch_id, location_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range s.Items {
		it := &s.Items[i]
		it.SupplyID = s.ID
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.SupplyID, it.BatchID, it.LocationID, it.Quantity, i+1); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert supply item: %w", err)
		}
	}
	return nil
}

func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	return r.get(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la entrega hasta el fin de la transacción.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.get(ctx, `SELECT `+supplyColumns+` FROM supplies WHERE id = $1 FOR UPDATE`, id)
}

func (r *SupplyRepo) get(ctx context.Context, query, id string) (*entity.Supply, error) {
	s, err := scanSupply(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Supply{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// ListByOrder entregas del pedido por fecha y orden de registro.
func (r *SupplyRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE order_id = $1 ORDER BY date, seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SupplyRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE supplies SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update supply status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ShippedByBatch unidades ya enviadas por partida entre todas las entregas del pedido.
func (r *SupplyRepo) ShippedByBatch(ctx context.Context, orderID string) (map[string]int, error) {
	query := `
		SELECT si.batch_id, SUM(si.quantity)
		FROM supply_items si
		JOIN supplies s ON s.id = si.supply_id
		WHERE s.order_id = $1
		GROUP BY si.batch_id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("shipped by batch: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var batchID string
		var qty int
		if err := rows.Scan(&batchID, &qty); err != nil {
			return nil, fmt.Errorf("scan shipped: %w", err)
		}
		out[batchID] = qty
	}
	return out, rows.Err()
}

func (r *SupplyRepo) loadItems(ctx context.Context, supplies []*entity.Supply) error {
	if len(supplies) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Supply, len(supplies))
	ids := make([]string, 0, len(supplies))
	for _, s := range supplies {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	query := `
		SELECT id, supply_id, batch_id, location_id, quantity
		FROM supply_items WHERE supply_id = ANY($1::uuid[])
		ORDER BY supply_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list supply items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SupplyItem
		if err := rows.Scan(&it.ID, &it.SupplyID, &it.BatchID, &it.LocationID, &it.Quantity); err != nil {
			return fmt.Errorf("scan supply item: %w", err)
		}
		s := byID[it.SupplyID]
		s.Items = append(s.Items, it)
	}
	return rows.Err()
}
