package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageLocation ubicación física de almacenamiento con capacidad máxima
// (en unidades de cantidad). La utilización actual se deriva de los registros
// de inventario que la referencian.
type StorageLocation struct {
	ID           string
	Name         string
	Capacity     decimal.Decimal
	ItemTypeOnly string // restricción de elegibilidad por tipo de ítem; vacío = sin restricción
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Eligible indica si la ubicación admite el tipo de ítem dado.
func (l *StorageLocation) Eligible(itemType string) bool {
	return l.ItemTypeOnly == "" || l.ItemTypeOnly == itemType
}
