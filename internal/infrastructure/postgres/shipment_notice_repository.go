package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ShipmentNoticeRepository = (*ShipmentNoticeRepo)(nil)

// ShipmentNoticeRepo implementación sobre PostgreSQL (usable con pool o tx).
type ShipmentNoticeRepo struct {
	q Querier
}

// NewShipmentNoticeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentNoticeRepository(q Querier) *ShipmentNoticeRepo {
	return &ShipmentNoticeRepo{q: q}
}

// Create persiste el aviso con sus líneas.
func (r *ShipmentNoticeRepo) Create(ctx context.Context, n *entity.ShipmentNotice) error {
	query := `
		INSERT INTO shipment_notices (id, purchase_order_id, status, putaway_blocked, arrived_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.PurchaseOrderID, n.Status, n.PutawayBlocked, n.ArrivedAt, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment notice: %w", err)
	}
	return r.insertLines(ctx, n)
}

func (r *ShipmentNoticeRepo) insertLines(ctx context.Context, n *entity.ShipmentNotice) error {
	for _, l := range n.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO shipment_lines (notice_id, line_no, item_id, shipped_quantity, remaining_quantity, put_away_quantity, actual_unit_price, fee_rate, fee_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			n.ID, l.LineNo, l.ItemID, l.ShippedQuantity, l.RemainingQuantity,
			l.PutAwayQuantity, l.ActualUnitPrice, l.FeeRate, l.FeeAmount,
		)
		if err != nil {
			return fmt.Errorf("insert shipment line: %w", err)
		}
	}
	return nil
}

func (r *ShipmentNoticeRepo) getByID(ctx context.Context, id string, forUpdate bool) (*entity.ShipmentNotice, error) {
	query := `
		SELECT id, purchase_order_id, status, putaway_blocked, arrived_at, created_at, updated_at
		FROM shipment_notices WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var n entity.ShipmentNotice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.PurchaseOrderID, &n.Status, &n.PutawayBlocked, &n.ArrivedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment notice: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT line_no, item_id, shipped_quantity, remaining_quantity, put_away_quantity, actual_unit_price, fee_rate, fee_amount
		FROM shipment_lines WHERE notice_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list shipment lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ShipmentLine
		if err := rows.Scan(&l.LineNo, &l.ItemID, &l.ShippedQuantity, &l.RemainingQuantity,
			&l.PutAwayQuantity, &l.ActualUnitPrice, &l.FeeRate, &l.FeeAmount); err != nil {
			return nil, fmt.Errorf("scan shipment line: %w", err)
		}
		n.Lines = append(n.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByID obtiene el aviso con sus líneas, o nil si no existe.
func (r *ShipmentNoticeRepo) GetByID(ctx context.Context, id string) (*entity.ShipmentNotice, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate igual que GetByID bloqueando la fila del aviso.
func (r *ShipmentNoticeRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ShipmentNotice, error) {
	return r.getByID(ctx, id, true)
}

// Update persiste la cabecera y reemplaza las líneas.
func (r *ShipmentNoticeRepo) Update(ctx context.Context, n *entity.ShipmentNotice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE shipment_notices SET status = $2, putaway_blocked = $3, arrived_at = $4, updated_at = $5
		WHERE id = $1`,
		n.ID, n.Status, n.PutawayBlocked, n.ArrivedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment notice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_lines WHERE notice_id = $1`, n.ID); err != nil {
		return fmt.Errorf("delete shipment lines: %w", err)
	}
	return r.insertLines(ctx, n)
}

// UpdateLine persiste solo las cantidades de una línea (acomodo).
func (r *ShipmentNoticeRepo) UpdateLine(ctx context.Context, noticeID string, l *entity.ShipmentLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE shipment_lines SET remaining_quantity = $3, put_away_quantity = $4
		WHERE notice_id = $1 AND line_no = $2`,
		noticeID, l.LineNo, l.RemainingQuantity, l.PutAwayQuantity,
	)
	if err != nil {
		return fmt.Errorf("update shipment line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista avisos (sin líneas) con paginación.
func (r *ShipmentNoticeRepo) List(ctx context.Context, limit, offset int) ([]*entity.ShipmentNotice, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, status, putaway_blocked, arrived_at, created_at, updated_at
		FROM shipment_notices ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shipment notices: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShipmentNotice
	for rows.Next() {
		var n entity.ShipmentNotice
		if err := rows.Scan(&n.ID, &n.PurchaseOrderID, &n.Status, &n.PutawayBlocked,
			&n.ArrivedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment notice: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
