package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateLocationRequest alta de una ubicación de almacenamiento.
type CreateLocationRequest struct {
	Name         string          `json:"name"`
	Capacity     decimal.Decimal `json:"capacity"`
	ItemTypeOnly string          `json:"item_type_only"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Capacity     decimal.Decimal `json:"capacity"`
	ItemTypeOnly string          `json:"item_type_only,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewLocationResponse mapea la entidad al DTO de respuesta.
func NewLocationResponse(l *entity.StorageLocation) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Capacity:     l.Capacity,
		ItemTypeOnly: l.ItemTypeOnly,
		CreatedAt:    l.CreatedAt,
	}
}
