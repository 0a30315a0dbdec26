package receiving_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/receiving"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos falsos del paquete.
// El txRunner falso toma un snapshot antes de ejecutar y lo restaura si la
// función falla, imitando el rollback de una transacción real.
type memStore struct {
	records   map[string]*entity.InventoryRecord // clave: itemID|locationID
	movements []*entity.StockMovement
	locations map[string]*entity.StorageLocation
	notices   map[string]*entity.ShipmentNotice
	orders    map[string]*entity.PurchaseOrder
}

func newMemStore() *memStore {
	return &memStore{
		records:   make(map[string]*entity.InventoryRecord),
		locations: make(map[string]*entity.StorageLocation),
		notices:   make(map[string]*entity.ShipmentNotice),
		orders:    make(map[string]*entity.PurchaseOrder),
	}
}

func recKey(itemID, locationID string) string { return itemID + "|" + locationID }

func copyNotice(n *entity.ShipmentNotice) *entity.ShipmentNotice {
	c := *n
	c.Lines = append([]entity.ShipmentLine(nil), n.Lines...)
	if n.ArrivedAt != nil {
		at := *n.ArrivedAt
		c.ArrivedAt = &at
	}
	return &c
}

func copyPO(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	c.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
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
	for k, n := range s.notices {
		cp.notices[k] = copyNotice(n)
	}
	for k, o := range s.orders {
		cp.orders[k] = copyPO(o)
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.records = snap.records
	s.movements = snap.movements
	s.locations = snap.locations
	s.notices = snap.notices
	s.orders = snap.orders
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

type memNoticeRepo struct{ store *memStore }

var _ repository.ShipmentNoticeRepository = (*memNoticeRepo)(nil)

func (r *memNoticeRepo) Create(_ context.Context, notice *entity.ShipmentNotice) error {
	r.store.notices[notice.ID] = copyNotice(notice)
	return nil
}

func (r *memNoticeRepo) GetByID(_ context.Context, id string) (*entity.ShipmentNotice, error) {
	n, ok := r.store.notices[id]
	if !ok {
		return nil, nil
	}
	return copyNotice(n), nil
}

func (r *memNoticeRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ShipmentNotice, error) {
	return r.GetByID(ctx, id)
}

func (r *memNoticeRepo) Update(_ context.Context, notice *entity.ShipmentNotice) error {
	r.store.notices[notice.ID] = copyNotice(notice)
	return nil
}

func (r *memNoticeRepo) UpdateLine(_ context.Context, noticeID string, line *entity.ShipmentLine) error {
	n, ok := r.store.notices[noticeID]
	if !ok {
		return nil
	}
	for i := range n.Lines {
		if n.Lines[i].LineNo == line.LineNo {
			n.Lines[i] = *line
		}
	}
	return nil
}

func (r *memNoticeRepo) List(_ context.Context, _, _ int) ([]*entity.ShipmentNotice, error) {
	var out []*entity.ShipmentNotice
	for _, n := range r.store.notices {
		out = append(out, copyNotice(n))
	}
	return out, nil
}

type memPORepo struct{ store *memStore }

var _ repository.PurchaseOrderRepository = (*memPORepo)(nil)

func (r *memPORepo) Create(_ context.Context, order *entity.PurchaseOrder) error {
	r.store.orders[order.ID] = copyPO(order)
	return nil
}

func (r *memPORepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return copyPO(o), nil
}

func (r *memPORepo) UpdateStatus(_ context.Context, id string, status entity.PurchaseOrderStatus, at time.Time) error {
	if o, ok := r.store.orders[id]; ok {
		o.Status = status
		o.UpdatedAt = at
	}
	return nil
}

func (r *memPORepo) List(_ context.Context, _, _ int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.store.orders {
		out = append(out, copyPO(o))
	}
	return out, nil
}

// memTxRunner ejecuta la función con repos sobre el memStore; restaura el
// snapshot si falla, imitando el rollback transaccional.
type memTxRunner struct{ store *memStore }

var _ receiving.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) RunReceiving(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
	noticeRepo repository.ShipmentNoticeRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&memInvRepo{t.store}, &memMovRepo{t.store}, &memLocRepo{t.store}, &memNoticeRepo{t.store}, &memPORepo{t.store})
	if err != nil {
		t.store.restore(snap)
	}
	return err
}
