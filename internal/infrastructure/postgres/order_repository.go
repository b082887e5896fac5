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

var (
	_ repository.OrderRepository = (*OrderRepo)(nil)
	_ repository.BatchRepository = (*BatchRepo)(nil)
)

// OrderRepo pedidos a fábrica sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, date, factory_id, currency, exchange_rate, status, created_at`

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := row.Scan(&o.ID, &o.Number, &o.Date, &o.FactoryID, &o.Currency, &o.ExchangeRate, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste la cabecera del pedido. domain.ErrDuplicate si el número ya existe.
func (r *OrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, number, date, factory_id, currency, exchange_rate, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, o.ID, o.Number, o.Date, o.FactoryID, o.Currency, o.Rate(), o.Status, o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// List pedidos más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY date DESC, seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// AddItem agrega una línea de precio. La FK compuesta (batch_id, order_id) rechaza partidas de otro pedido.
func (r *OrderRepo) AddItem(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, batch_id, quantity, price, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, it.ID, it.OrderID, it.BatchID, it.Quantity, it.Price, it.Amount, it.Position)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// ListItems líneas de precio del pedido en orden de posición.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, batch_id, quantity, price, amount, position
		FROM order_items WHERE order_id = $1 ORDER BY position, seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.BatchID, &it.Quantity, &it.Price, &it.Amount, &it.Position); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// BatchRepo partidas de producción sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de partidas.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, order_id, product_id, color, size, planned_quantity, COALESCE(recipe_id::text, ''),
	material_cost_total, material_cost_per_unit, created_at`

func scanBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	err := row.Scan(&b.ID, &b.OrderID, &b.ProductID, &b.Color, &b.Size, &b.PlannedQuantity, &b.RecipeID,
		&b.MaterialCostTotal, &b.MaterialCostPerUnit, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste una partida (costos nulos).
func (r *BatchRepo) Create(ctx context.Context, b *entity.ProductionBatch) error {
	query := `
		INSERT INTO production_batches (id, order_id, product_id, color, size, planned_quantity, recipe_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, b.ID, b.OrderID, b.ProductID, b.Color, b.Size, b.PlannedQuantity,
		nullable(b.RecipeID), b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert production batch: %w", err)
	}
	return nil
}

// GetByID obtiene una partida por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene la partida y bloquea la fila hasta el fin de la transacción.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE id = $1 FOR UPDATE`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch for update: %w", err)
	}
	return b, nil
}

// ListByOrder partidas de un pedido en orden de creación.
func (r *BatchRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list production batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateMaterialCost fija el costo de materiales de la partida.
func (r *BatchRepo) UpdateMaterialCost(ctx context.Context, batchID string, total, perUnit decimal.Decimal) error {
	query := `
		UPDATE production_batches
		SET material_cost_total = $2, material_cost_per_unit = $3
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, batchID, total, perUnit)
	if err != nil {
		return fmt.Errorf("update batch material cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
