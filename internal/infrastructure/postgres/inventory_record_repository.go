package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryColumns = `item_id, location_id, quantity, status, unit_cost, source_ref, notes, updated_at`

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ItemID, &rec.LocationID, &rec.Quantity, &rec.Status,
		&rec.UnitCost, &rec.SourceRef, &rec.Notes, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get obtiene el registro de (ítem, ubicación), o nil si no existe.
func (r *InventoryRecordRepo) Get(ctx context.Context, itemID, locationID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records WHERE item_id = $1 AND location_id = $2`
	rec, err := scanRecord(r.q.QueryRow(ctx, query, itemID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro bloqueando la fila (SELECT FOR UPDATE), o
// nil si no existe. El bloqueo serializa las mutaciones por clave.
func (r *InventoryRecordRepo) GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	rec, err := scanRecord(r.q.QueryRow(ctx, query, itemID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// Upsert inserta o actualiza el registro (clave única por ítem y ubicación).
func (r *InventoryRecordRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (item_id, location_id, quantity, status, unit_cost, source_ref, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, status = EXCLUDED.status,
			unit_cost = EXCLUDED.unit_cost, source_ref = EXCLUDED.source_ref,
			notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		rec.ItemID, rec.LocationID, rec.Quantity, rec.Status,
		rec.UnitCost, rec.SourceRef, rec.Notes, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// Delete elimina el registro de (ítem, ubicación).
func (r *InventoryRecordRepo) Delete(ctx context.Context, itemID, locationID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_records WHERE item_id = $1 AND location_id = $2`, itemID, locationID)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	return nil
}

// ListByItem lista los registros de un ítem en todas sus ubicaciones.
func (r *InventoryRecordRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records WHERE item_id = $1 ORDER BY location_id`
	return r.list(ctx, query, itemID)
}

// ListByLocation lista los registros de una ubicación.
func (r *InventoryRecordRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records WHERE location_id = $1 ORDER BY item_id`
	return r.list(ctx, query, locationID)
}

// List lista registros con paginación (snapshot de solo lectura para reportes).
func (r *InventoryRecordRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records ORDER BY item_id, location_id LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

func (r *InventoryRecordRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ItemID, &rec.LocationID, &rec.Quantity, &rec.Status,
			&rec.UnitCost, &rec.SourceRef, &rec.Notes, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// UtilizationByLocation suma las cantidades de todos los registros de la ubicación.
func (r *InventoryRecordRepo) UtilizationByLocation(ctx context.Context, locationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_records WHERE location_id = $1`
	var util decimal.Decimal
	if err := r.q.QueryRow(ctx, query, locationID).Scan(&util); err != nil {
		return decimal.Zero, fmt.Errorf("utilization by location: %w", err)
	}
	return util, nil
}
