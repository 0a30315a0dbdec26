package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ShipmentLineRequest línea propuesta para un aviso de embarque.
type ShipmentLineRequest struct {
	ItemID          string          `json:"item_id"`
	ShippedQuantity decimal.Decimal `json:"shipped_quantity"`
	ActualUnitPrice decimal.Decimal `json:"actual_unit_price"`
}

// CreateShipmentNoticeRequest solicitud de creación de un aviso de embarque.
type CreateShipmentNoticeRequest struct {
	PurchaseOrderID string                `json:"purchase_order_id"`
	Lines           []ShipmentLineRequest `json:"lines"`
}

// MarkArrivedRequest fecha de llegada opcional (por defecto: ahora).
type MarkArrivedRequest struct {
	ArrivedAt *time.Time `json:"arrived_at"`
}

// PutawayRequest colocación de una línea en una ubicación.
type PutawayRequest struct {
	LineNo     int             `json:"line_no"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// BulkPutawayRequest lote de colocaciones, todo o nada.
type BulkPutawayRequest struct {
	Placements []PutawayRequest `json:"placements"`
}

// ShipmentLineResponse línea de aviso en respuestas.
type ShipmentLineResponse struct {
	LineNo            int             `json:"line_no"`
	ItemID            string          `json:"item_id"`
	ShippedQuantity   decimal.Decimal `json:"shipped_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	PutAwayQuantity   decimal.Decimal `json:"put_away_quantity"`
	ActualUnitPrice   decimal.Decimal `json:"actual_unit_price"`
	FeeRate           decimal.Decimal `json:"fee_rate"`
	FeeAmount         decimal.Decimal `json:"fee_amount"`
}

// ShipmentNoticeResponse aviso de embarque en respuestas.
type ShipmentNoticeResponse struct {
	ID              string                 `json:"id"`
	PurchaseOrderID string                 `json:"purchase_order_id"`
	Status          string                 `json:"status"`
	PutawayBlocked  bool                   `json:"putaway_blocked"`
	ArrivedAt       *time.Time             `json:"arrived_at,omitempty"`
	Lines           []ShipmentLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// NewShipmentNoticeResponse mapea la entidad al DTO de respuesta.
func NewShipmentNoticeResponse(n *entity.ShipmentNotice) ShipmentNoticeResponse {
	resp := ShipmentNoticeResponse{
		ID:              n.ID,
		PurchaseOrderID: n.PurchaseOrderID,
		Status:          string(n.Status),
		PutawayBlocked:  n.PutawayBlocked,
		ArrivedAt:       n.ArrivedAt,
		CreatedAt:       n.CreatedAt,
	}
	for _, l := range n.Lines {
		resp.Lines = append(resp.Lines, ShipmentLineResponse{
			LineNo:            l.LineNo,
			ItemID:            l.ItemID,
			ShippedQuantity:   l.ShippedQuantity,
			RemainingQuantity: l.RemainingQuantity,
			PutAwayQuantity:   l.PutAwayQuantity,
			ActualUnitPrice:   l.ActualUnitPrice,
			FeeRate:           l.FeeRate,
			FeeAmount:         l.FeeAmount,
		})
	}
	return resp
}
