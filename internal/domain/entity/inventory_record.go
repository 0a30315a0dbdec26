package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStatus estado de ciclo de vida de un registro de inventario.
type InventoryStatus string

const (
	InventoryStatusAvailable InventoryStatus = "available"
	InventoryStatusReserved  InventoryStatus = "reserved"
	InventoryStatusBlocked   InventoryStatus = "blocked"
)

// IsValid indica si el estado es uno de los conocidos.
func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusAvailable, InventoryStatusReserved, InventoryStatusBlocked:
		return true
	}
	return false
}

// InventoryRecord registro de inventario por (ítem, ubicación). Clave única:
// no existen dos registros con el mismo par; las mutaciones se fusionan sobre
// el registro existente. Quantity nunca es negativa.
type InventoryRecord struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	Status     InventoryStatus
	UnitCost   decimal.Decimal // costo promedio ponderado
	SourceRef  string          // trazabilidad: aviso de embarque o traslado que lo produjo
	Notes      string
	UpdatedAt  time.Time
}
