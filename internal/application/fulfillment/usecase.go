package fulfillment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/fee"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase coordina el despacho: máquina de estados del pedido de venta
// (pending → confirmed → shipped → completed, cancelación antes de despachar)
// y el ciclo reserva → descuento sobre el libro de inventario.
type UseCase struct {
	txRunner TxRunner
	feeCalc  *fee.Calculator
}

// NewUseCase construye el caso de uso de despacho.
func NewUseCase(txRunner TxRunner, feeCalc *fee.Calculator) *UseCase {
	return &UseCase{txRunner: txRunner, feeCalc: feeCalc}
}

// OrderLineInput línea propuesta para un pedido de venta.
type OrderLineInput struct {
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateOrderInput entrada para crear un pedido de venta.
type CreateOrderInput struct {
	CustomerID string
	Lines      []OrderLineInput
}

// CreateSalesOrder crea un pedido en estado pending con tarifas calculadas
// por línea y el total general (importes + tarifas).
func (uc *UseCase) CreateSalesOrder(ctx context.Context, in CreateOrderInput) (*entity.SalesOrder, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	order := &entity.SalesOrder{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Status:     entity.SalesStatusPending,
		Lines:      lines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	order.RecomputeTotal()

	err = uc.txRunner.RunFulfillment(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateLines reemplaza las líneas del pedido. Solo legal mientras está
// pending; tarifas y total se recalculan.
func (uc *UseCase) UpdateLines(ctx context.Context, orderID string, inputs []OrderLineInput) error {
	if len(inputs) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunFulfillment(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.SalesStatusPending {
			return domain.ErrInvalidTransition
		}
		lines, err := uc.buildLines(inputs)
		if err != nil {
			return err
		}
		order.Lines = lines
		order.RecomputeTotal()
		order.UpdatedAt = time.Now()
		return orderRepo.Update(ctx, order)
	})
}

// buildLines valida las líneas y calcula la tarifa de cada una.
func (uc *UseCase) buildLines(inputs []OrderLineInput) ([]entity.SalesOrderLine, error) {
	lines := make([]entity.SalesOrderLine, 0, len(inputs))
	for i, l := range inputs {
		if l.ItemID == "" || !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		rate, err := uc.feeCalc.Rate(l.UnitPrice)
		if err != nil {
			return nil, err
		}
		amount, err := uc.feeCalc.Amount(l.UnitPrice, l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.SalesOrderLine{
			LineNo:    i + 1,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			FeeRate:   rate,
			FeeAmount: amount,
		})
	}
	return lines, nil
}

// Confirm reserva stock para cada línea del pedido. Para cada ítem, el
// disponible (cantidad − reservado) sobre registros no bloqueados debe cubrir
// lo pedido; si no, falla con ErrInsufficientStock nombrando los ítems cortos
// y no reserva nada. La reserva aparta cantidades sin cambiarlas: se persisten
// asignaciones (ítem, ubicación, cantidad) y los registros tocados pasan a
// estado reserved.
func (uc *UseCase) Confirm(ctx context.Context, orderID string) error {
	return uc.txRunner.RunFulfillment(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.SalesStatusConfirmed) {
			return domain.ErrInvalidTransition
		}

		var allocations []entity.StockAllocation
		var short []string
		// Reservas en vuelo de este mismo confirm, por (ítem, ubicación):
		// dos líneas del mismo ítem no pueden apartar dos veces el mismo stock.
		inflight := make(map[string]decimal.Decimal)
		for i := range order.Lines {
			line := &order.Lines[i]
			lineAllocs, missing, err := uc.allocateLine(ctx, invRepo, orderRepo, order.ID, line, inflight)
			if err != nil {
				return err
			}
			if missing {
				short = append(short, line.ItemID)
				continue
			}
			allocations = append(allocations, lineAllocs...)
		}
		if len(short) > 0 {
			return fmt.Errorf("%w: ítems %s", domain.ErrInsufficientStock, strings.Join(short, ", "))
		}

		if err := orderRepo.CreateAllocations(ctx, allocations); err != nil {
			return err
		}
		// Marca reserved los registros tocados (cambio de estado, no de cantidad)
		now := time.Now()
		for _, a := range allocations {
			rec, err := invRepo.GetForUpdate(ctx, a.ItemID, a.LocationID)
			if err != nil {
				return err
			}
			if rec == nil {
				return domain.ErrNotFound
			}
			if rec.Status != entity.InventoryStatusReserved {
				rec.Status = entity.InventoryStatusReserved
				rec.UpdatedAt = now
				if err := invRepo.Upsert(ctx, rec); err != nil {
					return err
				}
			}
		}

		// Recalcula tarifas y total al confirmar
		lines, err := uc.buildLines(lineInputs(order.Lines))
		if err != nil {
			return err
		}
		order.Lines = lines
		order.RecomputeTotal()
		order.Status = entity.SalesStatusConfirmed
		order.UpdatedAt = now
		return orderRepo.Update(ctx, order)
	})
}

// allocateLine reparte lo pedido de una línea entre los registros del ítem
// con disponible (cantidad − reservado por cualquier pedido − reservado en
// vuelo por líneas anteriores de este confirm, registros no bloqueados).
// missing=true si el disponible total no cubre lo pedido.
func (uc *UseCase) allocateLine(
	ctx context.Context,
	invRepo repository.InventoryRecordRepository,
	orderRepo repository.SalesOrderRepository,
	orderID string,
	line *entity.SalesOrderLine,
	inflight map[string]decimal.Decimal,
) ([]entity.StockAllocation, bool, error) {
	records, err := invRepo.ListByItem(ctx, line.ItemID)
	if err != nil {
		return nil, false, err
	}
	pending := line.Quantity
	var allocs []entity.StockAllocation
	for _, rec := range records {
		if pending.IsZero() {
			break
		}
		if rec.Status == entity.InventoryStatusBlocked {
			continue
		}
		reserved, err := orderRepo.AllocatedQuantity(ctx, rec.ItemID, rec.LocationID)
		if err != nil {
			return nil, false, err
		}
		key := rec.ItemID + "|" + rec.LocationID
		available := rec.Quantity.Sub(reserved).Sub(inflight[key])
		if !available.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(available, pending)
		allocs = append(allocs, entity.StockAllocation{
			OrderID:    orderID,
			LineNo:     line.LineNo,
			ItemID:     rec.ItemID,
			LocationID: rec.LocationID,
			Quantity:   take,
		})
		inflight[key] = inflight[key].Add(take)
		pending = pending.Sub(take)
	}
	return allocs, !pending.IsZero(), nil
}

// Ship convierte la reserva en descuento real: por cada asignación descuenta
// la cantidad reservada contra la ubicación elegida al confirmar. Solo legal
// desde confirmed. Se revalida existencia defensivamente: si algún descuento
// violara el stock, nada se aplica y el estado no cambia.
func (uc *UseCase) Ship(ctx context.Context, orderID string) error {
	return uc.txRunner.RunFulfillment(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.SalesStatusShipped) {
			return domain.ErrInvalidTransition
		}

		allocations, err := orderRepo.ListAllocations(ctx, order.ID)
		if err != nil {
			return err
		}
		txID := uuid.NewString()
		now := time.Now()
		for _, a := range allocations {
			if err := ledger.ApplyReduceStock(ctx, invRepo, movRepo, a.ItemID, a.LocationID, a.Quantity, order.ID, txID, now); err != nil {
				return err
			}
		}
		if err := orderRepo.DeleteAllocations(ctx, order.ID); err != nil {
			return err
		}
		if err := uc.releaseRecords(ctx, invRepo, orderRepo, allocations, now); err != nil {
			return err
		}

		order.Status = entity.SalesStatusShipped
		order.UpdatedAt = now
		return orderRepo.Update(ctx, order)
	})
}

// Complete confirma la entrega. Solo legal desde shipped; sin efecto sobre stock.
func (uc *UseCase) Complete(ctx context.Context, orderID string) error {
	return uc.transition(ctx, orderID, entity.SalesStatusCompleted)
}

// Cancel cancela el pedido. Legal desde pending o confirmed; una vez
// despachado la mercancía ya salió y no se puede cancelar. Si estaba
// confirmado, libera las reservas antes de transicionar.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) error {
	return uc.txRunner.RunFulfillment(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.SalesStatusCancelled) {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		if order.Status == entity.SalesStatusConfirmed {
			allocations, err := orderRepo.ListAllocations(ctx, order.ID)
			if err != nil {
				return err
			}
			if err := orderRepo.DeleteAllocations(ctx, order.ID); err != nil {
				return err
			}
			if err := uc.releaseRecords(ctx, invRepo, orderRepo, allocations, now); err != nil {
				return err
			}
		}

		order.Status = entity.SalesStatusCancelled
		order.UpdatedAt = now
		return orderRepo.Update(ctx, order)
	})
}

// transition aplica un cambio de estado puro (sin efecto sobre stock).
func (uc *UseCase) transition(ctx context.Context, orderID string, target entity.SalesOrderStatus) error {
	return uc.txRunner.RunFulfillment(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(target) {
			return domain.ErrInvalidTransition
		}
		order.Status = target
		order.UpdatedAt = time.Now()
		return orderRepo.Update(ctx, order)
	})
}

// releaseRecords devuelve a available los registros que quedaron sin reservas
// activas tras eliminar las asignaciones del pedido.
func (uc *UseCase) releaseRecords(
	ctx context.Context,
	invRepo repository.InventoryRecordRepository,
	orderRepo repository.SalesOrderRepository,
	allocations []entity.StockAllocation,
	now time.Time,
) error {
	seen := make(map[string]bool, len(allocations))
	for _, a := range allocations {
		key := a.ItemID + "|" + a.LocationID
		if seen[key] {
			continue
		}
		seen[key] = true

		remaining, err := orderRepo.AllocatedQuantity(ctx, a.ItemID, a.LocationID)
		if err != nil {
			return err
		}
		if remaining.GreaterThan(decimal.Zero) {
			continue
		}
		rec, err := invRepo.GetForUpdate(ctx, a.ItemID, a.LocationID)
		if err != nil {
			return err
		}
		if rec == nil || rec.Status != entity.InventoryStatusReserved {
			continue
		}
		rec.Status = entity.InventoryStatusAvailable
		rec.UpdatedAt = now
		if err := invRepo.Upsert(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// lineInputs reconstruye las entradas a partir de líneas existentes (para
// recalcular tarifas con la política vigente).
func lineInputs(lines []entity.SalesOrderLine) []OrderLineInput {
	inputs := make([]OrderLineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, OrderLineInput{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return inputs
}
