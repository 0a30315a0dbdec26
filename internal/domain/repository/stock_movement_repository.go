package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockMovementRepository puerto para el libro de movimientos (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error)
}
