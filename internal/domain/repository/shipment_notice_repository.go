package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ShipmentNoticeRepository puerto para avisos de embarque y sus líneas.
type ShipmentNoticeRepository interface {
	Create(ctx context.Context, notice *entity.ShipmentNotice) error
	// GetByID devuelve el aviso con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.ShipmentNotice, error)
	// GetByIDForUpdate igual que GetByID pero bloqueando la fila del aviso,
	// para serializar acomodos concurrentes sobre el mismo aviso.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ShipmentNotice, error)
	// Update persiste cabecera y líneas (reemplazo completo de líneas).
	Update(ctx context.Context, notice *entity.ShipmentNotice) error
	// UpdateLine persiste solo las cantidades de una línea (acomodo).
	UpdateLine(ctx context.Context, noticeID string, line *entity.ShipmentLine) error
	List(ctx context.Context, limit, offset int) ([]*entity.ShipmentNotice, error)
}
