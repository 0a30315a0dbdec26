package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PurchaseOrderLineRequest línea de una orden de compra.
type PurchaseOrderLineRequest struct {
	ItemID          string          `json:"item_id"`
	OrderedQuantity decimal.Decimal `json:"ordered_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest alta mínima de una orden de compra (intake del
// colaborador de compras; el núcleo solo la consume).
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineResponse línea de orden en respuestas.
type PurchaseOrderLineResponse struct {
	LineNo          int             `json:"line_no"`
	ItemID          string          `json:"item_id"`
	OrderedQuantity decimal.Decimal `json:"ordered_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderResponse orden de compra en respuestas.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Lines      []PurchaseOrderLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

// NewPurchaseOrderResponse mapea la entidad al DTO de respuesta.
func NewPurchaseOrderResponse(o *entity.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, PurchaseOrderLineResponse{
			LineNo:          l.LineNo,
			ItemID:          l.ItemID,
			OrderedQuantity: l.OrderedQuantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	return resp
}
