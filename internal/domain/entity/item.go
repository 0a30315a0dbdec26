package entity

import "time"

// Item referencia de catálogo mínima que el núcleo necesita: el tipo se usa
// para la elegibilidad de ubicaciones. El catálogo completo vive fuera del núcleo.
type Item struct {
	ID        string
	SKU       string
	Name      string
	ItemType  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
