package fulfillment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/almacen-api/internal/application/fulfillment"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/fee"
)

func newTestCalculator(t *testing.T) *fee.Calculator {
	t.Helper()
	b100 := decimal.NewFromInt(100)
	b500 := decimal.NewFromInt(500)
	b1000 := decimal.NewFromInt(1000)
	calc, err := fee.New([]fee.Tier{
		{UpTo: &b100, Rate: decimal.RequireFromString("0.03")},
		{UpTo: &b500, Rate: decimal.RequireFromString("0.04")},
		{UpTo: &b1000, Rate: decimal.RequireFromString("0.05")},
		{Rate: decimal.RequireFromString("0.08")},
	})
	require.NoError(t, err)
	return calc
}

func newFulfillmentUC(t *testing.T, store *memStore) *fulfillment.UseCase {
	t.Helper()
	return fulfillment.NewUseCase(&memTxRunner{store}, newTestCalculator(t))
}

func seedStock(store *memStore, itemID, locationID string, qty int64, status entity.InventoryStatus) {
	store.records[recKey(itemID, locationID)] = &entity.InventoryRecord{
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   decimal.NewFromInt(qty),
		Status:     status,
		UnitCost:   decimal.RequireFromString("5.00"),
		UpdatedAt:  time.Now(),
	}
}

func createOrder(t *testing.T, uc *fulfillment.UseCase, qty int64) *entity.SalesOrder {
	t.Helper()
	order, err := uc.CreateSalesOrder(context.Background(), fulfillment.CreateOrderInput{
		CustomerID: "cli-1",
		Lines: []fulfillment.OrderLineInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.RequireFromString("10.50")},
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateSalesOrder_TarifasYTotal(t *testing.T) {
	store := newMemStore()
	uc := newFulfillmentUC(t, store)

	order, err := uc.CreateSalesOrder(context.Background(), fulfillment.CreateOrderInput{
		CustomerID: "cli-1",
		Lines: []fulfillment.OrderLineInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.RequireFromString("10.50")},
			{ItemID: "item-2", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("2000.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusPending, order.Status)
	require.Len(t, order.Lines, 2)

	assert.True(t, order.Lines[0].FeeRate.Equal(decimal.RequireFromString("0.03")))
	assert.True(t, order.Lines[0].FeeAmount.Equal(decimal.RequireFromString("31.50")))
	assert.True(t, order.Lines[1].FeeRate.Equal(decimal.RequireFromString("0.08")), "precio 2000 cae en la banda abierta")

	// total = 1050 + 31.50 + 4000 + 320 = 5401.50
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("5401.50")), "total: %s", order.GrandTotal)

	require.NotNil(t, store.orders[order.ID], "el pedido queda persistido")
}

func TestCreateSalesOrder_Validaciones(t *testing.T) {
	store := newMemStore()
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()

	_, err := uc.CreateSalesOrder(ctx, fulfillment.CreateOrderInput{CustomerID: "", Lines: []fulfillment.OrderLineInput{{ItemID: "i", Quantity: decimal.NewFromInt(1)}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.CreateSalesOrder(ctx, fulfillment.CreateOrderInput{CustomerID: "cli-1"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.CreateSalesOrder(ctx, fulfillment.CreateOrderInput{
		CustomerID: "cli-1",
		Lines:      []fulfillment.OrderLineInput{{ItemID: "item-1", Quantity: decimal.NewFromInt(-3), UnitPrice: decimal.NewFromInt(1)}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestConfirm_ReservaSinCambiarCantidades(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 60, entity.InventoryStatusAvailable)
	seedStock(store, "item-1", "loc-b", 50, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	order := createOrder(t, uc, 80)

	require.NoError(t, uc.Confirm(context.Background(), order.ID))

	got := store.orders[order.ID]
	assert.Equal(t, entity.SalesStatusConfirmed, got.Status)

	// La reserva aparta 60 de loc-a y 20 de loc-b sin tocar cantidades
	assert.True(t, store.records[recKey("item-1", "loc-a")].Quantity.Equal(decimal.NewFromInt(60)))
	assert.True(t, store.records[recKey("item-1", "loc-b")].Quantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, entity.InventoryStatusReserved, store.records[recKey("item-1", "loc-a")].Status)
	assert.Equal(t, entity.InventoryStatusReserved, store.records[recKey("item-1", "loc-b")].Status)

	require.Len(t, store.allocations, 2)
	total := decimal.Zero
	for _, a := range store.allocations {
		total = total.Add(a.Quantity)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(80)), "las asignaciones cubren exactamente lo pedido")
	assert.Empty(t, store.movements, "reservar no asienta movimientos")
}

func TestConfirm_InsuficienteNombraLosItemsYNoReservaNada(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 10, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)

	order, err := uc.CreateSalesOrder(context.Background(), fulfillment.CreateOrderInput{
		CustomerID: "cli-1",
		Lines: []fulfillment.OrderLineInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(30), UnitPrice: decimal.NewFromInt(10)},
			{ItemID: "item-2", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	err = uc.Confirm(context.Background(), order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "item-1")
	assert.Contains(t, err.Error(), "item-2")

	assert.Empty(t, store.allocations, "el corte no debe dejar reservas parciales")
	assert.Equal(t, entity.SalesStatusPending, store.orders[order.ID].Status)
	assert.Equal(t, entity.InventoryStatusAvailable, store.records[recKey("item-1", "loc-a")].Status)
}

func TestConfirm_ItemRepetidoNoDuplicaLaReserva(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 10, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()

	// Dos líneas del mismo ítem piden 20 en total sobre existencia de 10:
	// la segunda línea no puede volver a apartar el mismo stock.
	order, err := uc.CreateSalesOrder(ctx, fulfillment.CreateOrderInput{
		CustomerID: "cli-1",
		Lines: []fulfillment.OrderLineInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("10.50")},
			{ItemID: "item-1", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("10.50")},
		},
	})
	require.NoError(t, err)

	err = uc.Confirm(ctx, order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Empty(t, store.allocations, "el corte no debe dejar reservas parciales")
	assert.Equal(t, entity.SalesStatusPending, store.orders[order.ID].Status)

	// Si entre las dos líneas cabe en la existencia, la reserva total es la suma
	order2, err := uc.CreateSalesOrder(ctx, fulfillment.CreateOrderInput{
		CustomerID: "cli-1",
		Lines: []fulfillment.OrderLineInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(6), UnitPrice: decimal.RequireFromString("10.50")},
			{ItemID: "item-1", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.RequireFromString("10.50")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Confirm(ctx, order2.ID))

	total := decimal.Zero
	for _, a := range store.allocations {
		total = total.Add(a.Quantity)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(10)), "reservado total: %s", total)
	assert.True(t, store.records[recKey("item-1", "loc-a")].Quantity.Equal(decimal.NewFromInt(10)),
		"reservar no cambia cantidades")
}

func TestConfirm_IgnoraStockBloqueadoYYaReservado(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 100, entity.InventoryStatusBlocked)
	seedStock(store, "item-1", "loc-b", 40, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()

	// Otro pedido ya reservó 25 de loc-b: disponible real = 15
	primero := createOrder(t, uc, 25)
	require.NoError(t, uc.Confirm(ctx, primero.ID))

	segundo := createOrder(t, uc, 16)
	err := uc.Confirm(ctx, segundo.ID)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock),
		"el bloqueado no cuenta y lo reservado por otros tampoco")

	tercero := createOrder(t, uc, 15)
	require.NoError(t, uc.Confirm(ctx, tercero.ID), "el disponible restante sí alcanza para 15")
}

func TestShip_DescuentaYLiberaReservas(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 60, entity.InventoryStatusAvailable)
	seedStock(store, "item-1", "loc-b", 50, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()
	order := createOrder(t, uc, 80)
	require.NoError(t, uc.Confirm(ctx, order.ID))

	require.NoError(t, uc.Ship(ctx, order.ID))

	assert.Equal(t, entity.SalesStatusShipped, store.orders[order.ID].Status)
	assert.True(t, store.records[recKey("item-1", "loc-a")].Quantity.IsZero())
	assert.True(t, store.records[recKey("item-1", "loc-b")].Quantity.Equal(decimal.NewFromInt(30)))
	assert.Empty(t, store.allocations, "despachar consume las reservas")
	assert.Equal(t, entity.InventoryStatusAvailable, store.records[recKey("item-1", "loc-b")].Status,
		"sin reservas activas el registro vuelve a available")

	require.Len(t, store.movements, 2, "una salida por cada asignación")
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Equal(t, order.ID, m.SourceRef, "el asiento referencia al pedido")
	}
}

func TestShip_SoloDesdeConfirmed(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 100, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()
	order := createOrder(t, uc, 10)

	err := uc.Ship(ctx, order.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "despachar sin confirmar no es legal")
	assert.True(t, store.records[recKey("item-1", "loc-a")].Quantity.Equal(decimal.NewFromInt(100)))

	err = uc.Ship(ctx, "pedido-fantasma")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestComplete_SoloDesdeShipped(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 100, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()
	order := createOrder(t, uc, 10)

	err := uc.Complete(ctx, order.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	require.NoError(t, uc.Confirm(ctx, order.ID))
	require.NoError(t, uc.Ship(ctx, order.ID))
	qtyAfterShip := store.records[recKey("item-1", "loc-a")].Quantity

	require.NoError(t, uc.Complete(ctx, order.ID))
	assert.Equal(t, entity.SalesStatusCompleted, store.orders[order.ID].Status)
	assert.True(t, store.records[recKey("item-1", "loc-a")].Quantity.Equal(qtyAfterShip),
		"completar no toca stock")
}

func TestCancel_ConfirmadoLiberaLasReservas(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 100, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()
	order := createOrder(t, uc, 40)
	require.NoError(t, uc.Confirm(ctx, order.ID))
	require.Len(t, store.allocations, 1)

	require.NoError(t, uc.Cancel(ctx, order.ID))

	assert.Equal(t, entity.SalesStatusCancelled, store.orders[order.ID].Status)
	assert.Empty(t, store.allocations)
	rec := store.records[recKey("item-1", "loc-a")]
	assert.Equal(t, entity.InventoryStatusAvailable, rec.Status, "la reserva liberada vuelve a available")
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(100)), "cancelar no toca cantidades")
}

func TestCancel_DespachadoNoSePuede(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 100, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()
	order := createOrder(t, uc, 10)
	require.NoError(t, uc.Confirm(ctx, order.ID))
	require.NoError(t, uc.Ship(ctx, order.ID))

	err := uc.Cancel(ctx, order.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "la mercancía ya salió")
}

func TestUpdateLines_SoloPending(t *testing.T) {
	store := newMemStore()
	seedStock(store, "item-1", "loc-a", 100, entity.InventoryStatusAvailable)
	uc := newFulfillmentUC(t, store)
	ctx := context.Background()
	order := createOrder(t, uc, 10)

	require.NoError(t, uc.UpdateLines(ctx, order.ID, []fulfillment.OrderLineInput{
		{ItemID: "item-1", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.RequireFromString("600.00")},
	}))
	got := store.orders[order.ID]
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].FeeRate.Equal(decimal.RequireFromString("0.05")))
	// total = 12000 + 600 = 12600
	assert.True(t, got.GrandTotal.Equal(decimal.NewFromInt(12600)))

	require.NoError(t, uc.Confirm(ctx, order.ID))
	err := uc.UpdateLines(ctx, order.ID, []fulfillment.OrderLineInput{
		{ItemID: "item-1", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10)},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "confirmado ya no se editan líneas")
}
