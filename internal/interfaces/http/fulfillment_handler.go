package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/fulfillment"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// FulfillmentHandler maneja las peticiones HTTP de despacho: pedidos de
// venta y su ciclo reserva → envío (protegido).
type FulfillmentHandler struct {
	uc        *fulfillment.UseCase
	orderRepo repository.SalesOrderRepository
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(uc *fulfillment.UseCase, orderRepo repository.SalesOrderRepository) *FulfillmentHandler {
	return &FulfillmentHandler{uc: uc, orderRepo: orderRepo}
}

// Create godoc
// @Summary      Crear pedido de venta
// @Tags         fulfillment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "customer_id y líneas (item_id, quantity, unit_price)"
// @Success      201  {object}  dto.SalesOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *FulfillmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateSalesOrder(c.Context(), fulfillment.CreateOrderInput{
		CustomerID: in.CustomerID,
		Lines:      toOrderLines(in.Lines),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSalesOrderResponse(order))
}

// UpdateLines reemplaza las líneas del pedido (solo pending); total recalculado.
func (h *FulfillmentHandler) UpdateLines(c *fiber.Ctx) error {
	var in dto.UpdateSalesOrderLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateLines(c.Context(), c.Params("id"), toOrderLines(in.Lines)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "líneas actualizadas"})
}

// Confirm godoc
// @Summary      Confirmar pedido: valida disponibilidad y reserva stock
// @Tags         fulfillment
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con los ítems cortos"
// @Router       /api/sales-orders/{id}/confirm [post]
func (h *FulfillmentHandler) Confirm(c *fiber.Ctx) error {
	if err := h.uc.Confirm(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido confirmado, stock reservado"})
}

// Ship convierte la reserva en descuento real de stock.
func (h *FulfillmentHandler) Ship(c *fiber.Ctx) error {
	if err := h.uc.Ship(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido despachado"})
}

// Complete confirma la entrega (solo estado, sin stock).
func (h *FulfillmentHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido completado"})
}

// Cancel cancela el pedido liberando reservas si estaba confirmado.
func (h *FulfillmentHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido cancelado"})
}

// GetByID devuelve el pedido con sus líneas.
func (h *FulfillmentHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	return c.JSON(dto.NewSalesOrderResponse(order))
}

// List lista pedidos (snapshot de solo lectura).
func (h *FulfillmentHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	orders, err := h.orderRepo.List(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	resp := make([]dto.SalesOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.NewSalesOrderResponse(o))
	}
	return c.JSON(fiber.Map{"total": len(resp), "orders": resp})
}

func toOrderLines(lines []dto.SalesOrderLineRequest) []fulfillment.OrderLineInput {
	inputs := make([]fulfillment.OrderLineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, fulfillment.OrderLineInput{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return inputs
}
