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

var _ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)

// StorageLocationRepo implementación sobre PostgreSQL (usable con pool o tx).
type StorageLocationRepo struct {
	q Querier
}

// NewStorageLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *StorageLocationRepo) Create(ctx context.Context, loc *entity.StorageLocation) error {
	query := `
		INSERT INTO storage_locations (id, name, capacity, item_type_only, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Capacity, loc.ItemTypeOnly, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID, o nil si no existe.
func (r *StorageLocationRepo) GetByID(ctx context.Context, id string) (*entity.StorageLocation, error) {
	query := `
		SELECT id, name, capacity, item_type_only, created_at, updated_at
		FROM storage_locations WHERE id = $1`
	var loc entity.StorageLocation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Capacity, &loc.ItemTypeOnly, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &loc, nil
}

// List lista ubicaciones con paginación.
func (r *StorageLocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StorageLocation, error) {
	query := `
		SELECT id, name, capacity, item_type_only, created_at, updated_at
		FROM storage_locations ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListEligible lista ubicaciones que admiten el tipo de ítem (sin restricción
// o con restricción coincidente).
func (r *StorageLocationRepo) ListEligible(ctx context.Context, itemType string) ([]*entity.StorageLocation, error) {
	query := `
		SELECT id, name, capacity, item_type_only, created_at, updated_at
		FROM storage_locations WHERE item_type_only = '' OR item_type_only = $1
		ORDER BY name`
	return r.list(ctx, query, itemType)
}

func (r *StorageLocationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StorageLocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var loc entity.StorageLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Capacity, &loc.ItemTypeOnly, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}
