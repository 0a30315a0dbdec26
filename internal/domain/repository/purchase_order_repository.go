package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto hacia el colaborador de compras. El núcleo
// solo necesita snapshots de lectura y el callback de cierre al crear un
// aviso de embarque.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
}
