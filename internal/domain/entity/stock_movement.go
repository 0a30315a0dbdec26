package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType clase de asiento del libro de inventario.
type MovementType string

// Tipos de movimiento del libro de inventario. Un traslado se asienta como
// par OUT + IN con el mismo TransactionID, no como asiento TRANSFER.
const (
	MovementTypeIN       MovementType = "IN"       // entrada por acomodo o ajuste positivo
	MovementTypeOUT      MovementType = "OUT"      // salida por despacho o ajuste negativo
	MovementTypeTRANSFER MovementType = "TRANSFER" // traslado entre ubicaciones
)

// StockMovement asiento del libro de inventario. Se escribe uno por cada
// mutación de cantidad; la referencia de origen (SourceRef) permite conciliar
// contra el aviso de embarque o el pedido que lo causó.
type StockMovement struct {
	ID            string
	TransactionID string // agrupa los asientos de una misma operación (ej. traslado)
	ItemID        string
	LocationID    string
	Type          MovementType
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	SourceRef     string
	CreatedAt     time.Time
}
