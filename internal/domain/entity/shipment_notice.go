package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentNoticeStatus estado de un aviso de embarque (ASN).
type ShipmentNoticeStatus string

const (
	ShipmentStatusInTransit ShipmentNoticeStatus = "in_transit"
	ShipmentStatusArrived   ShipmentNoticeStatus = "arrived"
	ShipmentStatusProcessed ShipmentNoticeStatus = "processed"
	ShipmentStatusCancelled ShipmentNoticeStatus = "cancelled"
)

// IsValid indica si el estado es uno de los conocidos.
func (s ShipmentNoticeStatus) IsValid() bool {
	switch s {
	case ShipmentStatusInTransit, ShipmentStatusArrived,
		ShipmentStatusProcessed, ShipmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo tabla de transiciones: in_transit → arrived → processed,
// con cancelación solo desde in_transit o arrived. processed y cancelled son terminales.
func (s ShipmentNoticeStatus) CanTransitionTo(target ShipmentNoticeStatus) bool {
	switch s {
	case ShipmentStatusInTransit:
		return target == ShipmentStatusArrived || target == ShipmentStatusCancelled
	case ShipmentStatusArrived:
		return target == ShipmentStatusProcessed || target == ShipmentStatusCancelled
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s ShipmentNoticeStatus) IsTerminal() bool {
	return s == ShipmentStatusProcessed || s == ShipmentStatusCancelled
}

// ShipmentLine línea de un aviso de embarque.
// Invariante: ShippedQuantity == RemainingQuantity + PutAwayQuantity en todo momento.
type ShipmentLine struct {
	LineNo            int
	ItemID            string
	ShippedQuantity   decimal.Decimal // fija al crear el aviso
	RemainingQuantity decimal.Decimal // pendiente de acomodo
	PutAwayQuantity   decimal.Decimal // ya acomodada
	ActualUnitPrice   decimal.Decimal
	FeeRate           decimal.Decimal
	FeeAmount         decimal.Decimal
}

// ShipmentNotice aviso de embarque entrante contra una orden de compra.
// La referencia a la orden es por ID estable, no por puntero (persistencia independiente).
type ShipmentNotice struct {
	ID              string
	PurchaseOrderID string
	Status          ShipmentNoticeStatus
	PutawayBlocked  bool
	ArrivedAt       *time.Time
	Lines           []ShipmentLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineByNo devuelve la línea con el número dado, o nil si no existe.
func (n *ShipmentNotice) LineByNo(lineNo int) *ShipmentLine {
	for i := range n.Lines {
		if n.Lines[i].LineNo == lineNo {
			return &n.Lines[i]
		}
	}
	return nil
}

// FullyPutAway indica si todas las líneas tienen cantidad restante cero.
func (n *ShipmentNotice) FullyPutAway() bool {
	for i := range n.Lines {
		if !n.Lines[i].RemainingQuantity.IsZero() {
			return false
		}
	}
	return true
}
