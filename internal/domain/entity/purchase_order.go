package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado de una orden de compra.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "sent"
	PurchaseOrderStatusClosed    PurchaseOrderStatus = "closed"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid indica si el estado es uno de los conocidos.
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent,
		PurchaseOrderStatusClosed, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo tabla de transiciones: draft → sent → closed, con cancelación
// desde draft o sent. closed y cancelled son terminales.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusSent || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSent:
		return target == PurchaseOrderStatusClosed || target == PurchaseOrderStatusCancelled
	}
	return false
}

// PurchaseOrderLine línea de una orden de compra (ítem, cantidad ordenada, precio unitario).
type PurchaseOrderLine struct {
	LineNo          int
	ItemID          string
	OrderedQuantity decimal.Decimal
	UnitPrice       decimal.Decimal
}

// PurchaseOrder compromiso con un proveedor. Snapshot de solo lectura para el
// núcleo de recepción; se cierra al crear un aviso de embarque contra ella.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     PurchaseOrderStatus
	Lines      []PurchaseOrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LineForItem devuelve la línea de la orden para un ítem, o nil si el ítem no está ordenado.
func (p *PurchaseOrder) LineForItem(itemID string) *PurchaseOrderLine {
	for i := range p.Lines {
		if p.Lines[i].ItemID == itemID {
			return &p.Lines[i]
		}
	}
	return nil
}
