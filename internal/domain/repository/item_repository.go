package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ItemRepository puerto de lectura del catálogo mínimo de ítems.
type ItemRepository interface {
	// GetByID devuelve el ítem o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
}
