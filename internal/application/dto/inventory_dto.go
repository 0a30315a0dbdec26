package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// InventoryRecordResponse registro de inventario en respuestas (snapshot
// de solo lectura, estado ya confirmado).
type InventoryRecordResponse struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Status     string          `json:"status"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	SourceRef  string          `json:"source_ref"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewInventoryRecordResponse mapea la entidad al DTO de respuesta.
func NewInventoryRecordResponse(r *entity.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ItemID:     r.ItemID,
		LocationID: r.LocationID,
		Quantity:   r.Quantity,
		Status:     string(r.Status),
		UnitCost:   r.UnitCost,
		SourceRef:  r.SourceRef,
		UpdatedAt:  r.UpdatedAt,
	}
}

// StockMovementResponse asiento del libro en respuestas.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ItemID        string          `json:"item_id"`
	LocationID    string          `json:"location_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	SourceRef     string          `json:"source_ref"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewStockMovementResponse mapea la entidad al DTO de respuesta.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		LocationID:    m.LocationID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		SourceRef:     m.SourceRef,
		CreatedAt:     m.CreatedAt,
	}
}

// TransferStockRequest traslado de stock entre ubicaciones.
type TransferStockRequest struct {
	ItemID         string          `json:"item_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	SourceRef      string          `json:"source_ref"`
}

// UpdateInventoryStatusRequest cambio de estado de un registro (sin cantidades).
type UpdateInventoryStatusRequest struct {
	ItemID     string `json:"item_id"`
	LocationID string `json:"location_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}
