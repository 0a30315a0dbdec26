package fee

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// Tier banda de precio para la tarifa de manejo. UpTo es el límite superior
// inclusivo del precio unitario; nil significa "todo lo que esté por encima
// de la banda anterior" (banda final).
type Tier struct {
	UpTo *decimal.Decimal
	Rate decimal.Decimal
}

// Calculator calcula la tarifa de manejo por bandas de precio. Las bandas son
// política inyectada (configuración), no constantes de negocio. Servicio de
// dominio puro: sin estado, sin efectos.
type Calculator struct {
	tiers []Tier
}

// New valida la tabla de bandas y construye el calculador. Las bandas deben
// venir en orden ascendente de límite, con exactamente una banda final abierta,
// y tasas en [0, 1].
func New(tiers []Tier) (*Calculator, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("fee: tabla de bandas vacía")
	}
	var prev *decimal.Decimal
	for i, t := range tiers {
		if t.Rate.IsNegative() || t.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("fee: tasa fuera de [0,1] en banda %d", i)
		}
		if t.UpTo == nil {
			if i != len(tiers)-1 {
				return nil, fmt.Errorf("fee: banda abierta antes del final (banda %d)", i)
			}
			continue
		}
		if t.UpTo.IsNegative() {
			return nil, fmt.Errorf("fee: límite negativo en banda %d", i)
		}
		if prev != nil && !t.UpTo.GreaterThan(*prev) {
			return nil, fmt.Errorf("fee: límites no ascendentes en banda %d", i)
		}
		prev = t.UpTo
	}
	if tiers[len(tiers)-1].UpTo != nil {
		return nil, fmt.Errorf("fee: falta la banda final abierta")
	}
	cp := make([]Tier, len(tiers))
	copy(cp, tiers)
	return &Calculator{tiers: cp}, nil
}

// Rate devuelve la tasa de tarifa para un precio unitario. Determinista.
// Rechaza precios negativos con ErrInvalidInput.
func (c *Calculator) Rate(unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	for _, t := range c.tiers {
		if t.UpTo == nil || unitPrice.LessThanOrEqual(*t.UpTo) {
			return t.Rate, nil
		}
	}
	// inalcanzable: New garantiza banda final abierta
	return c.tiers[len(c.tiers)-1].Rate, nil
}

// Amount devuelve la tarifa total: Rate(precio) × precio × cantidad.
func (c *Calculator) Amount(unitPrice, quantity decimal.Decimal) (decimal.Decimal, error) {
	rate, err := c.Rate(unitPrice)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Mul(unitPrice).Mul(quantity), nil
}
