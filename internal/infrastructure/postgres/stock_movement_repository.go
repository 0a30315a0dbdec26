package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un asiento del libro de movimientos.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, item_id, location_id, type, quantity, unit_cost, source_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ItemID, m.LocationID, m.Type,
		m.Quantity, m.UnitCost, m.SourceRef, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem lista los asientos de un ítem, más recientes primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, item_id, location_id, type, quantity, unit_cost, source_ref, created_at
		FROM stock_movements WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, itemID, limit, offset)
}

// List lista asientos con paginación, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, item_id, location_id, type, quantity, unit_cost, source_ref, created_at
		FROM stock_movements ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ItemID, &m.LocationID, &m.Type,
			&m.Quantity, &m.UnitCost, &m.SourceRef, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
