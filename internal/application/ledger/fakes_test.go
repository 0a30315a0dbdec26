package ledger_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos falsos. El txRunner
// falso toma un snapshot antes de ejecutar y lo restaura si la función falla,
// imitando el rollback de una transacción real.
type memStore struct {
	records   map[string]*entity.InventoryRecord // clave: itemID|locationID
	movements []*entity.StockMovement
	locations map[string]*entity.StorageLocation
	items     map[string]*entity.Item
}

func newMemStore() *memStore {
	return &memStore{
		records:   make(map[string]*entity.InventoryRecord),
		locations: make(map[string]*entity.StorageLocation),
		items:     make(map[string]*entity.Item),
	}
}

func recKey(itemID, locationID string) string { return itemID + "|" + locationID }

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
	for k, i := range s.items {
		c := *i
		cp.items[k] = &c
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.records = snap.records
	s.movements = snap.movements
	s.locations = snap.locations
	s.items = snap.items
}

// memInvRepo implementación en memoria del repositorio de registros.
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
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
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
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
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

// memMovRepo libro de movimientos en memoria (append-only).
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

// memLocRepo ubicaciones en memoria.
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
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memItemRepo catálogo mínimo de ítems en memoria.
type memItemRepo struct{ store *memStore }

var _ repository.ItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	c := *item
	r.store.items[item.ID] = &c
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *memItemRepo) List(_ context.Context, _, _ int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.store.items {
		c := *item
		out = append(out, &c)
	}
	return out, nil
}

// memTxRunner ejecuta la función con repos sobre el memStore; restaura el
// snapshot si falla, imitando el rollback transaccional.
type memTxRunner struct{ store *memStore }

var _ ledger.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&memInvRepo{t.store}, &memMovRepo{t.store}, &memLocRepo{t.store})
	if err != nil {
		t.store.restore(snap)
	}
	return err
}
