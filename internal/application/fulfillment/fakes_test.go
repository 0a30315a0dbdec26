package fulfillment_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/fulfillment"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos falsos del paquete.
// El txRunner falso toma un snapshot antes de ejecutar y lo restaura si la
// función falla, imitando el rollback de una transacción real.
type memStore struct {
	records     map[string]*entity.InventoryRecord // clave: itemID|locationID
	movements   []*entity.StockMovement
	locations   map[string]*entity.StorageLocation
	orders      map[string]*entity.SalesOrder
	allocations []entity.StockAllocation
}

func newMemStore() *memStore {
	return &memStore{
		records:   make(map[string]*entity.InventoryRecord),
		locations: make(map[string]*entity.StorageLocation),
		orders:    make(map[string]*entity.SalesOrder),
	}
}

func recKey(itemID, locationID string) string { return itemID + "|" + locationID }

func copyOrder(o *entity.SalesOrder) *entity.SalesOrder {
	c := *o
	c.Lines = append([]entity.SalesOrderLine(nil), o.Lines...)
	return &c
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, r := range s.records {
		c := *r
		cp.records[k] = &c
	}
	cp.movements = append(cp.movements, s.movements...)
	for k, l := range s.locations {
		c := *l
		cp.locations[k] = &c
	}
	for k, o := range s.orders {
		cp.orders[k] = copyOrder(o)
	}
	cp.allocations = append(cp.allocations, s.allocations...)
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.records = snap.records
	s.movements = snap.movements
	s.locations = snap.locations
	s.orders = snap.orders
	s.allocations = snap.allocations
}

type memInvRepo struct{ store *memStore }

var _ repository.InventoryRecordRepository = (*memInvRepo)(nil)

func (r *memInvRepo) Get(_ context.Context, itemID, locationID string) (*entity.InventoryRecord, error) {
	rec, ok := r.store.records[recKey(itemID, locationID)]
	if !ok {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

func (r *memInvRepo) GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.InventoryRecord, error) {
	return r.Get(ctx, itemID, locationID)
}

func (r *memInvRepo) Upsert(_ context.Context, record *entity.InventoryRecord) error {
	c := *record
	r.store.records[recKey(record.ItemID, record.LocationID)] = &c
	return nil
}

func (r *memInvRepo) Delete(_ context.Context, itemID, locationID string) error {
	delete(r.store.records, recKey(itemID, locationID))
	return nil
}

func (r *memInvRepo) ListByItem(_ context.Context, itemID string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range r.store.records {
		if rec.ItemID == itemID {
			c := *rec
			out = append(out, &c)
		}
	}
	// orden estable por ubicación para que la asignación sea determinista
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LocationID < out[i].LocationID {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *memInvRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range r.store.records {
		if rec.LocationID == locationID {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memInvRepo) List(_ context.Context, _, _ int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range r.store.records {
		c := *rec
		out = append(out, &c)
	}
	return out, nil
}

func (r *memInvRepo) UtilizationByLocation(_ context.Context, locationID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rec := range r.store.records {
		if rec.LocationID == locationID {
			total = total.Add(rec.Quantity)
		}
	}
	return total, nil
}

type memMovRepo struct{ store *memStore }

var _ repository.StockMovementRepository = (*memMovRepo)(nil)

func (r *memMovRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	c := *movement
	r.store.movements = append(r.store.movements, &c)
	return nil
}

func (r *memMovRepo) ListByItem(_ context.Context, itemID string, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovRepo) List(_ context.Context, _, _ int) ([]*entity.StockMovement, error) {
	return r.store.movements, nil
}

type memLocRepo struct{ store *memStore }

var _ repository.StorageLocationRepository = (*memLocRepo)(nil)

func (r *memLocRepo) Create(_ context.Context, location *entity.StorageLocation) error {
	c := *location
	r.store.locations[location.ID] = &c
	return nil
}

func (r *memLocRepo) GetByID(_ context.Context, id string) (*entity.StorageLocation, error) {
	loc, ok := r.store.locations[id]
	if !ok {
		return nil, nil
	}
	c := *loc
	return &c, nil
}

func (r *memLocRepo) List(_ context.Context, _, _ int) ([]*entity.StorageLocation, error) {
	var out []*entity.StorageLocation
	for _, loc := range r.store.locations {
		c := *loc
		out = append(out, &c)
	}
	return out, nil
}

func (r *memLocRepo) ListEligible(_ context.Context, itemType string) ([]*entity.StorageLocation, error) {
	var out []*entity.StorageLocation
	for _, loc := range r.store.locations {
		if loc.Eligible(itemType) {
			c := *loc
			out = append(out, &c)
		}
	}
	return out, nil
}

type memOrderRepo struct{ store *memStore }

var _ repository.SalesOrderRepository = (*memOrderRepo)(nil)

func (r *memOrderRepo) Create(_ context.Context, order *entity.SalesOrder) error {
	r.store.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) Update(_ context.Context, order *entity.SalesOrder) error {
	r.store.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memOrderRepo) List(_ context.Context, _, _ int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, o := range r.store.orders {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *memOrderRepo) CreateAllocations(_ context.Context, allocations []entity.StockAllocation) error {
	r.store.allocations = append(r.store.allocations, allocations...)
	return nil
}

func (r *memOrderRepo) ListAllocations(_ context.Context, orderID string) ([]entity.StockAllocation, error) {
	var out []entity.StockAllocation
	for _, a := range r.store.allocations {
		if a.OrderID == orderID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memOrderRepo) DeleteAllocations(_ context.Context, orderID string) error {
	kept := r.store.allocations[:0]
	for _, a := range r.store.allocations {
		if a.OrderID != orderID {
			kept = append(kept, a)
		}
	}
	r.store.allocations = kept
	return nil
}

func (r *memOrderRepo) AllocatedQuantity(_ context.Context, itemID, locationID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.store.allocations {
		if a.ItemID == itemID && a.LocationID == locationID {
			total = total.Add(a.Quantity)
		}
	}
	return total, nil
}

// memTxRunner ejecuta la función con repos sobre el memStore; restaura el
// snapshot si falla, imitando el rollback transaccional.
type memTxRunner struct{ store *memStore }

var _ fulfillment.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) RunFulfillment(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
	orderRepo repository.SalesOrderRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&memInvRepo{t.store}, &memMovRepo{t.store}, &memLocRepo{t.store}, &memOrderRepo{t.store})
	if err != nil {
		t.store.restore(snap)
	}
	return err
}
