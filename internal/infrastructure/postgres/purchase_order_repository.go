package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, l := range order.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_lines (order_id, line_no, item_id, ordered_quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, l.LineNo, l.ItemID, l.OrderedQuantity, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, status, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT line_no, item_id, ordered_quantity, unit_price
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.LineNo, &l.ItemID, &l.OrderedQuantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus cambia el estado de la orden (monótono; el cierre llega como
// callback al crear un aviso de embarque).
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, at,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes (sin líneas) con paginación.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, supplier_id, status, created_at, updated_at
		FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
