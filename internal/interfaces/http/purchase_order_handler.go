package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PurchaseOrderHandler maneja el intake mínimo de órdenes de compra: alta en
// draft, envío al proveedor y consulta. El cierre lo hace recepción al crear
// un aviso de embarque contra la orden (protegido).
type PurchaseOrderHandler struct {
	poRepo repository.PurchaseOrderRepository
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(poRepo repository.PurchaseOrderRepository) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poRepo: poRepo}
}

// Create godoc
// @Summary      Crear orden de compra (draft)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "proveedor y líneas ordenadas"
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id y al menos una línea requeridos"})
	}
	now := time.Now().UTC()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseOrderStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	seen := make(map[string]bool, len(in.Lines))
	for i, l := range in.Lines {
		if l.ItemID == "" || l.OrderedQuantity.LessThanOrEqual(decimal.Zero) || l.UnitPrice.LessThan(decimal.Zero) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cada línea requiere ítem, cantidad positiva y precio no negativo"})
		}
		if seen[l.ItemID] {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ítem repetido en las líneas"})
		}
		seen[l.ItemID] = true
		order.Lines = append(order.Lines, entity.PurchaseOrderLine{
			LineNo:          i + 1,
			ItemID:          l.ItemID,
			OrderedQuantity: l.OrderedQuantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	if err := h.poRepo.Create(c.Context(), order); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOrderResponse(order))
}

// Send pasa la orden de draft a sent; solo entonces acepta avisos de embarque.
func (h *PurchaseOrderHandler) Send(c *fiber.Ctx) error {
	return h.updateStatus(c, entity.PurchaseOrderStatusSent, "orden enviada al proveedor")
}

// Cancel cancela una orden que aún no fue cerrada.
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	return h.updateStatus(c, entity.PurchaseOrderStatusCancelled, "orden cancelada")
}

func (h *PurchaseOrderHandler) updateStatus(c *fiber.Ctx, target entity.PurchaseOrderStatus, msg string) error {
	order, err := h.poRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	if !order.Status.CanTransitionTo(target) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INVALID_TRANSITION",
			Message: "transición de estado no permitida: " + string(order.Status) + " → " + string(target),
		})
	}
	if err := h.poRepo.UpdateStatus(c.Context(), order.ID, target, time.Now().UTC()); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// GetByID devuelve la orden con sus líneas.
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.poRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(dto.NewPurchaseOrderResponse(order))
}

// List lista órdenes de compra.
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	orders, err := h.poRepo.List(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	resp := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.NewPurchaseOrderResponse(o))
	}
	return c.JSON(fiber.Map{"total": len(resp), "orders": resp})
}
