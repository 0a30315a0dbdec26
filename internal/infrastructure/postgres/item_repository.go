package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de lectura del catálogo mínimo sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene un ítem por ID, o nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `
		SELECT id, sku, name, item_type, created_at, updated_at
		FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.SKU, &it.Name, &it.ItemType, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
