package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// failOnExec falla la n-ésima sentencia (desde 1) con err.
type failOnExec struct {
	sqlRecorder
	n   int
	err error
}

func (q *failOnExec) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, _ := q.sqlRecorder.Exec(ctx, sql, args...)
	if len(q.sql) == q.n {
		return tag, q.err
	}
	return tag, nil
}

func TestStockCreate_PartidaInexistente(t *testing.T) {
	q := &failOnExec{n: 2, err: &pgconn.PgError{Code: "23503"}}
	m := &entity.StockMovement{
		ID: "m1", Kind: entity.StockKindIncome, ToLocationID: "loc", CreatedAt: time.Now(),
		Items: []entity.StockMovementItem{{ID: "i1", BatchID: "nope", Quantity: 1}},
	}

	err := NewStockRepository(q).Create(context.Background(), m)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "m1", m.Items[0].MovementID)
}

func TestStockListForBalance_OrdenDeRegistro(t *testing.T) {
	q := &sqlRecorder{}
	_, err := NewStockRepository(q).ListForBalance(context.Background(), "loc")
	require.Error(t, err)
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "ORDER BY seq")
	assert.NotContains(t, q.sql[0], "DESC")
}

func TestSupplyGetForUpdate_BloqueaLaFila(t *testing.T) {
	q := &sqlRecorder{}
	s, err := NewSupplyRepository(q).GetForUpdate(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, s)
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "FOR UPDATE")
}

func TestMoneyList_FiltrosOpcionales(t *testing.T) {
	q := &sqlRecorder{}
	_, err := NewMoneyTransactionRepository(q).List(context.Background(), repository.MoneyFilter{OrderID: "o1"}, 10, 0)
	require.Error(t, err)
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "($2 = '' OR order_id::text = $2)")
	assert.Contains(t, q.sql[0], "ORDER BY date DESC, seq DESC")
}

func TestOrderAddItem_PartidaDeOtroPedido(t *testing.T) {
	q := &failOnExec{n: 1, err: &pgconn.PgError{Code: "23503", ConstraintName: "order_items_batch_fkey"}}
	err := NewOrderRepository(q).AddItem(context.Background(), &entity.OrderItem{ID: "i1", OrderID: "o1", BatchID: "b9", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
