package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderStatus estado de un pedido de venta.
type SalesOrderStatus string

const (
	SalesStatusPending   SalesOrderStatus = "pending"
	SalesStatusConfirmed SalesOrderStatus = "confirmed"
	SalesStatusShipped   SalesOrderStatus = "shipped"
	SalesStatusCompleted SalesOrderStatus = "completed"
	SalesStatusCancelled SalesOrderStatus = "cancelled"
)

// IsValid indica si el estado es uno de los conocidos.
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesStatusPending, SalesStatusConfirmed, SalesStatusShipped,
		SalesStatusCompleted, SalesStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo tabla de transiciones: pending → confirmed → shipped → completed,
// con cancelación solo desde pending o confirmed. Una vez despachado, la mercancía
// ya salió: no se puede cancelar.
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesStatusPending:
		return target == SalesStatusConfirmed || target == SalesStatusCancelled
	case SalesStatusConfirmed:
		return target == SalesStatusShipped || target == SalesStatusCancelled
	case SalesStatusShipped:
		return target == SalesStatusCompleted
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s SalesOrderStatus) IsTerminal() bool {
	return s == SalesStatusCompleted || s == SalesStatusCancelled
}

// SalesOrderLine línea de un pedido de venta.
type SalesOrderLine struct {
	LineNo    int
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	FeeRate   decimal.Decimal
	FeeAmount decimal.Decimal
}

// Amount importe de la línea sin tarifa (cantidad × precio unitario).
func (l SalesOrderLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// StockAllocation reserva de stock de una línea contra un registro de inventario
// concreto (ítem, ubicación). No cambia cantidades: solo aparta.
type StockAllocation struct {
	OrderID    string
	LineNo     int
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
}

// SalesOrder pedido de venta saliente.
type SalesOrder struct {
	ID         string
	CustomerID string
	Status     SalesOrderStatus
	Lines      []SalesOrderLine
	GrandTotal decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecomputeTotal recalcula el total: suma de importes de línea más tarifas.
func (o *SalesOrder) RecomputeTotal() {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Amount()).Add(o.Lines[i].FeeAmount)
	}
	o.GrandTotal = total
}
