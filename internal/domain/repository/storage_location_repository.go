package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StorageLocationRepository puerto para ubicaciones de almacenamiento.
type StorageLocationRepository interface {
	Create(ctx context.Context, location *entity.StorageLocation) error
	// GetByID devuelve la ubicación o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.StorageLocation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StorageLocation, error)
	// ListEligible devuelve las ubicaciones que admiten el tipo de ítem dado
	// (sin restricción o con restricción coincidente).
	ListEligible(ctx context.Context, itemType string) ([]*entity.StorageLocation, error)
}
