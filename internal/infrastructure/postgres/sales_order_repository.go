package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste el pedido con sus líneas.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, customer_id, status, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.Status, o.GrandTotal, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return r.insertLines(ctx, o)
}

func (r *SalesOrderRepo) insertLines(ctx context.Context, o *entity.SalesOrder) error {
	for _, l := range o.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_lines (order_id, line_no, item_id, quantity, unit_price, fee_rate, fee_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.ID, l.LineNo, l.ItemID, l.Quantity, l.UnitPrice, l.FeeRate, l.FeeAmount,
		)
		if err != nil {
			return fmt.Errorf("insert sales order line: %w", err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) getByID(ctx context.Context, id string, forUpdate bool) (*entity.SalesOrder, error) {
	query := `
		SELECT id, customer_id, status, grand_total, created_at, updated_at
		FROM sales_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.SalesOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.GrandTotal, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT line_no, item_id, quantity, unit_price, fee_rate, fee_amount
		FROM sales_order_lines WHERE order_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.LineNo, &l.ItemID, &l.Quantity, &l.UnitPrice, &l.FeeRate, &l.FeeAmount); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene el pedido con sus líneas, o nil si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate igual que GetByID bloqueando la fila del pedido.
func (r *SalesOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.getByID(ctx, id, true)
}

// Update persiste la cabecera y reemplaza las líneas.
func (r *SalesOrderRepo) Update(ctx context.Context, o *entity.SalesOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET status = $2, grand_total = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.GrandTotal, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_order_lines WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete sales order lines: %w", err)
	}
	return r.insertLines(ctx, o)
}

// List lista pedidos (sin líneas) con paginación.
func (r *SalesOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_id, status, grand_total, created_at, updated_at
		FROM sales_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.GrandTotal, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CreateAllocations persiste las reservas creadas al confirmar.
func (r *SalesOrderRepo) CreateAllocations(ctx context.Context, allocations []entity.StockAllocation) error {
	for _, a := range allocations {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_allocations (order_id, line_no, item_id, location_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			a.OrderID, a.LineNo, a.ItemID, a.LocationID, a.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert allocation: %w", err)
		}
	}
	return nil
}

// ListAllocations lista las reservas activas de un pedido.
func (r *SalesOrderRepo) ListAllocations(ctx context.Context, orderID string) ([]entity.StockAllocation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT order_id, line_no, item_id, location_id, quantity
		FROM sales_order_allocations WHERE order_id = $1 ORDER BY line_no, location_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []entity.StockAllocation
	for rows.Next() {
		var a entity.StockAllocation
		if err := rows.Scan(&a.OrderID, &a.LineNo, &a.ItemID, &a.LocationID, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// DeleteAllocations elimina las reservas de un pedido (despacho o cancelación).
func (r *SalesOrderRepo) DeleteAllocations(ctx context.Context, orderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_order_allocations WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	return nil
}

// AllocatedQuantity suma las reservas activas sobre la clave (ítem, ubicación).
func (r *SalesOrderRepo) AllocatedQuantity(ctx context.Context, itemID, locationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales_order_allocations WHERE item_id = $1 AND location_id = $2`,
		itemID, locationID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("allocated quantity: %w", err)
	}
	return total, nil
}
