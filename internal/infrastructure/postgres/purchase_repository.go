package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras de insumos sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, supplier_id, date, currency, comment, created_at`

// Create inserta la compra y sus ítems. Debe ejecutarse dentro de una tx.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier_id, date, currency, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.SupplierID, p.Date, p.Currency, p.Comment, p.CreatedAt); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_items (id, purchase_id, material_id, quantity, amount, unit_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range p.Items {
		it := &p.Items[i]
		it.PurchaseID = p.ID
		_, err := r.q.Exec(ctx, itemQuery, it.ID, it.PurchaseID, it.MaterialID, it.Quantity, it.Amount, it.UnitPrice, i+1)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID compra con sus ítems.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id).Scan(
		&p.ID, &p.SupplierID, &p.Date, &p.Currency, &p.Comment, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Purchase{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// List compras más recientes primero, con ítems.
func (r *PurchaseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY date DESC, seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Date, &p.Currency, &p.Comment, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PurchaseRepo) loadItems(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Purchase, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	query := `
		SELECT id, purchase_id, material_id, quantity, amount, unit_price
		FROM purchase_items WHERE purchase_id = ANY($1::uuid[])
		ORDER BY purchase_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.MaterialID, &it.Quantity, &it.Amount, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan purchase item: %w", err)
		}
		p := byID[it.PurchaseID]
		p.Items = append(p.Items, it)
	}
	return rows.Err()
}

// LastUnitPrice precio de la compra más reciente del material: fecha desc, luego orden de registro desc;
// dentro de una misma compra gana el último ítem.
func (r *PurchaseRepo) LastUnitPrice(ctx context.Context, materialID string) (decimal.Decimal, bool, error) {
	query := `
		SELECT pi.unit_price
		FROM purchase_items pi
		JOIN purchases p ON p.id = pi.purchase_id
		WHERE pi.material_id = $1
		ORDER BY p.date DESC, p.seq DESC, pi.position DESC
		LIMIT 1`
	var price decimal.Decimal
	err := r.q.QueryRow(ctx, query, materialID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("last unit price: %w", err)
	}
	return price, true, nil
}
