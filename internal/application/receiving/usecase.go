package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/fee"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Tolerancia de sobre-embarque: la cantidad embarcada puede exceder lo
// ordenado hasta en un 10%.
var overShipTolerance = decimal.RequireFromString("1.10")

// UseCase coordina la recepción: máquina de estados del aviso de embarque
// (in_transit → arrived → processed, con cancelación antes de procesar) y su
// validación contra la orden de compra de origen.
type UseCase struct {
	txRunner TxRunner
	feeCalc  *fee.Calculator
}

// NewUseCase construye el caso de uso de recepción.
func NewUseCase(txRunner TxRunner, feeCalc *fee.Calculator) *UseCase {
	return &UseCase{txRunner: txRunner, feeCalc: feeCalc}
}

// NoticeLineInput línea propuesta para un aviso de embarque.
type NoticeLineInput struct {
	ItemID          string
	ShippedQuantity decimal.Decimal
	ActualUnitPrice decimal.Decimal
}

// CreateNoticeInput entrada para crear un aviso de embarque.
type CreateNoticeInput struct {
	PurchaseOrderID string
	Lines           []NoticeLineInput
}

// CreateShipmentNotice crea un aviso de embarque contra una orden de compra
// en estado "sent" y la cierra en la misma transacción. Cada línea propuesta
// debe corresponder a un ítem de la orden y no exceder el 110% de lo ordenado
// (ErrQuantityVariance). Las tarifas de manejo se calculan por línea sobre el
// precio unitario real; la cantidad restante arranca igual a la embarcada.
func (uc *UseCase) CreateShipmentNotice(ctx context.Context, in CreateNoticeInput) (*entity.ShipmentNotice, error) {
	if in.PurchaseOrderID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.ShipmentNotice
	err := uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetByID(ctx, in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.PurchaseOrderStatusSent {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		lines, err := uc.buildLines(po, in.Lines)
		if err != nil {
			return err
		}

		notice := &entity.ShipmentNotice{
			ID:              uuid.NewString(),
			PurchaseOrderID: po.ID,
			Status:          entity.ShipmentStatusInTransit,
			Lines:           lines,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := noticeRepo.Create(ctx, notice); err != nil {
			return err
		}
		// Cierra la orden de compra de origen (callback al colaborador de compras)
		if err := poRepo.UpdateStatus(ctx, po.ID, entity.PurchaseOrderStatusClosed, now); err != nil {
			return err
		}
		created = notice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// buildLines valida las líneas propuestas contra la orden y calcula tarifas.
// La tolerancia se evalúa sobre el embarcado acumulado por ítem: varias líneas
// del mismo ítem no pueden sumar más que el 110% de lo ordenado.
func (uc *UseCase) buildLines(po *entity.PurchaseOrder, inputs []NoticeLineInput) ([]entity.ShipmentLine, error) {
	lines := make([]entity.ShipmentLine, 0, len(inputs))
	shippedByItem := make(map[string]decimal.Decimal, len(inputs))
	for i, l := range inputs {
		if l.ItemID == "" || !l.ShippedQuantity.GreaterThan(decimal.Zero) || l.ActualUnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		ordered := po.LineForItem(l.ItemID)
		if ordered == nil {
			return nil, domain.ErrInvalidInput
		}
		shipped := shippedByItem[l.ItemID].Add(l.ShippedQuantity)
		if shipped.GreaterThan(ordered.OrderedQuantity.Mul(overShipTolerance)) {
			return nil, domain.ErrQuantityVariance
		}
		shippedByItem[l.ItemID] = shipped
		rate, err := uc.feeCalc.Rate(l.ActualUnitPrice)
		if err != nil {
			return nil, err
		}
		amount, err := uc.feeCalc.Amount(l.ActualUnitPrice, l.ShippedQuantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.ShipmentLine{
			LineNo:            i + 1,
			ItemID:            l.ItemID,
			ShippedQuantity:   l.ShippedQuantity,
			RemainingQuantity: l.ShippedQuantity,
			PutAwayQuantity:   decimal.Zero,
			ActualUnitPrice:   l.ActualUnitPrice,
			FeeRate:           rate,
			FeeAmount:         amount,
		})
	}
	return lines, nil
}

// MarkArrived marca la llegada del embarque. Solo legal desde in_transit;
// la fecha de llegada por defecto es ahora.
func (uc *UseCase) MarkArrived(ctx context.Context, noticeID string, at *time.Time) error {
	return uc.transition(ctx, noticeID, entity.ShipmentStatusArrived, func(n *entity.ShipmentNotice) error {
		arrivedAt := time.Now()
		if at != nil {
			arrivedAt = *at
		}
		n.ArrivedAt = &arrivedAt
		return nil
	})
}

// MarkProcessed marca el aviso como procesado. Solo legal desde arrived y
// mientras el acomodo no esté bloqueado. No exige cantidad restante cero:
// la completitud del acomodo se consulta aparte (CompletePutaway).
func (uc *UseCase) MarkProcessed(ctx context.Context, noticeID string) error {
	return uc.transition(ctx, noticeID, entity.ShipmentStatusProcessed, func(n *entity.ShipmentNotice) error {
		if n.PutawayBlocked {
			return domain.ErrInvalidTransition
		}
		return nil
	})
}

// Cancel cancela el aviso. Legal desde in_transit o arrived; nunca después
// de processed.
func (uc *UseCase) Cancel(ctx context.Context, noticeID string) error {
	return uc.transition(ctx, noticeID, entity.ShipmentStatusCancelled, nil)
}

// transition carga el aviso bajo bloqueo, valida la tabla de transiciones y
// persiste el nuevo estado.
func (uc *UseCase) transition(ctx context.Context, noticeID string, target entity.ShipmentNoticeStatus, prepare func(*entity.ShipmentNotice) error) error {
	return uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		notice, err := noticeRepo.GetByIDForUpdate(ctx, noticeID)
		if err != nil {
			return err
		}
		if notice == nil {
			return domain.ErrNotFound
		}
		if !notice.Status.CanTransitionTo(target) {
			return domain.ErrInvalidTransition
		}
		if prepare != nil {
			if err := prepare(notice); err != nil {
				return err
			}
		}
		notice.Status = target
		notice.UpdatedAt = time.Now()
		return noticeRepo.Update(ctx, notice)
	})
}

// UpdateLines reemplaza las líneas del aviso. Editar solo es legal mientras
// está in_transit; se revalida contra la orden de compra y se recalculan
// tarifas y cantidades.
func (uc *UseCase) UpdateLines(ctx context.Context, noticeID string, inputs []NoticeLineInput) error {
	if len(inputs) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		notice, err := noticeRepo.GetByIDForUpdate(ctx, noticeID)
		if err != nil {
			return err
		}
		if notice == nil {
			return domain.ErrNotFound
		}
		if notice.Status != entity.ShipmentStatusInTransit {
			return domain.ErrInvalidTransition
		}
		po, err := poRepo.GetByID(ctx, notice.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		lines, err := uc.buildLines(po, inputs)
		if err != nil {
			return err
		}
		notice.Lines = lines
		notice.UpdatedAt = time.Now()
		return noticeRepo.Update(ctx, notice)
	})
}

// SetPutawayBlocked bloquea o desbloquea el acomodo del aviso. El bloqueo
// impide acomodar y marcar como procesado; no aplica sobre estados terminales.
func (uc *UseCase) SetPutawayBlocked(ctx context.Context, noticeID string, blocked bool) error {
	return uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		notice, err := noticeRepo.GetByIDForUpdate(ctx, noticeID)
		if err != nil {
			return err
		}
		if notice == nil {
			return domain.ErrNotFound
		}
		if notice.Status.IsTerminal() {
			return domain.ErrInvalidTransition
		}
		notice.PutawayBlocked = blocked
		notice.UpdatedAt = time.Now()
		return noticeRepo.Update(ctx, notice)
	})
}
