package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SalesOrderLineRequest línea propuesta para un pedido de venta.
type SalesOrderLineRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSalesOrderRequest solicitud de creación de un pedido de venta.
type CreateSalesOrderRequest struct {
	CustomerID string                  `json:"customer_id"`
	Lines      []SalesOrderLineRequest `json:"lines"`
}

// UpdateSalesOrderLinesRequest reemplazo de líneas (solo en pending).
type UpdateSalesOrderLinesRequest struct {
	Lines []SalesOrderLineRequest `json:"lines"`
}

// SalesOrderLineResponse línea de pedido en respuestas.
type SalesOrderLineResponse struct {
	LineNo    int             `json:"line_no"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	FeeRate   decimal.Decimal `json:"fee_rate"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
}

// SalesOrderResponse pedido de venta en respuestas.
type SalesOrderResponse struct {
	ID         string                   `json:"id"`
	CustomerID string                   `json:"customer_id"`
	Status     string                   `json:"status"`
	GrandTotal decimal.Decimal          `json:"grand_total"`
	Lines      []SalesOrderLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

// NewSalesOrderResponse mapea la entidad al DTO de respuesta.
func NewSalesOrderResponse(o *entity.SalesOrder) SalesOrderResponse {
	resp := SalesOrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		GrandTotal: o.GrandTotal,
		CreatedAt:  o.CreatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, SalesOrderLineResponse{
			LineNo:    l.LineNo,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Amount:    l.Amount(),
			FeeRate:   l.FeeRate,
			FeeAmount: l.FeeAmount,
		})
	}
	return resp
}
