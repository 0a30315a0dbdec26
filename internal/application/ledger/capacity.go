package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CapacityManager asesora y aplica los límites de colocación por ubicación.
// La utilización se deriva de los registros de inventario; la capacidad y la
// restricción de tipo de ítem vienen de la ubicación.
type CapacityManager struct {
	invRepo  repository.InventoryRecordRepository
	locRepo  repository.StorageLocationRepository
	itemRepo repository.ItemRepository
}

// NewCapacityManager construye el gestor de capacidad.
func NewCapacityManager(
	invRepo repository.InventoryRecordRepository,
	locRepo repository.StorageLocationRepository,
	itemRepo repository.ItemRepository,
) *CapacityManager {
	return &CapacityManager{invRepo: invRepo, locRepo: locRepo, itemRepo: itemRepo}
}

// CanAccept indica si la ubicación admite la cantidad adicional sin exceder
// su capacidad. ErrNotFound si la ubicación no existe.
func (m *CapacityManager) CanAccept(ctx context.Context, locationID string, additional decimal.Decimal) (bool, error) {
	loc, err := m.locRepo.GetByID(ctx, locationID)
	if err != nil {
		return false, err
	}
	if loc == nil {
		return false, domain.ErrNotFound
	}
	return canAccept(ctx, m.invRepo, loc, additional)
}

// SuggestLocation sugiere dónde colocar una cantidad de un ítem. Política:
// preferir una ubicación que ya tenga el mismo ítem y capacidad residual;
// si no hay, la ubicación elegible con más capacidad libre. Devuelve nil
// (no error) cuando ninguna ubicación elegible puede recibir la cantidad:
// el llamador decide qué hacer con la ausencia.
func (m *CapacityManager) SuggestLocation(ctx context.Context, itemID string, quantity decimal.Decimal) (*entity.StorageLocation, error) {
	if itemID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := m.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	eligible, err := m.locRepo.ListEligible(ctx, item.ItemType)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	eligibleByID := make(map[string]*entity.StorageLocation, len(eligible))
	for _, loc := range eligible {
		eligibleByID[loc.ID] = loc
	}

	// 1. Ubicaciones que ya tienen el ítem, con capacidad residual suficiente
	records, err := m.invRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		loc, ok := eligibleByID[rec.LocationID]
		if !ok {
			continue
		}
		ok, err := canAccept(ctx, m.invRepo, loc, quantity)
		if err != nil {
			return nil, err
		}
		if ok {
			return loc, nil
		}
	}

	// 2. La ubicación elegible con más capacidad libre que admita la cantidad
	var best *entity.StorageLocation
	var bestFree decimal.Decimal
	for _, loc := range eligible {
		util, err := m.invRepo.UtilizationByLocation(ctx, loc.ID)
		if err != nil {
			return nil, err
		}
		free := loc.Capacity.Sub(util)
		if free.LessThan(quantity) {
			continue
		}
		if best == nil || free.GreaterThan(bestFree) {
			best = loc
			bestFree = free
		}
	}
	return best, nil
}
