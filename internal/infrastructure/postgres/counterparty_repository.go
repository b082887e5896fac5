package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

var _ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)

// CounterpartyRepo implementación de CounterpartyRepository sobre PostgreSQL.
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador de contrapartes.
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

// Create persiste una contraparte.
func (r *CounterpartyRepo) Create(ctx context.Context, cp *entity.Counterparty) error {
	query := `
		INSERT INTO counterparties (id, name, kind, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, cp.ID, cp.Name, cp.Kind, cp.Phone, cp.Email, cp.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert counterparty: %w", err)
	}
	return nil
}

// GetByID obtiene una contraparte por ID.
func (r *CounterpartyRepo) GetByID(ctx context.Context, id string) (*entity.Counterparty, error) {
	query := `SELECT id, name, kind, phone, email, created_at FROM counterparties WHERE id = $1`
	var cp entity.Counterparty
	err := r.q.QueryRow(ctx, query, id).Scan(&cp.ID, &cp.Name, &cp.Kind, &cp.Phone, &cp.Email, &cp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get counterparty: %w", err)
	}
	return &cp, nil
}

// List lista contrapartes por nombre.
func (r *CounterpartyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Counterparty, error) {
	query := `
		SELECT id, name, kind, phone, email, created_at
		FROM counterparties ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Counterparty
	for rows.Next() {
		var cp entity.Counterparty
		if err := rows.Scan(&cp.ID, &cp.Name, &cp.Kind, &cp.Phone, &cp.Email, &cp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan counterparty: %w", err)
		}
		list = append(list, &cp)
	}
	return list, rows.Err()
}
