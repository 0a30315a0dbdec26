package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/receiving"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReceivingHandler maneja las peticiones HTTP de recepción: avisos de
// embarque y acomodo (protegido).
type ReceivingHandler struct {
	uc         *receiving.UseCase
	noticeRepo repository.ShipmentNoticeRepository
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *receiving.UseCase, noticeRepo repository.ShipmentNoticeRepository) *ReceivingHandler {
	return &ReceivingHandler{uc: uc, noticeRepo: noticeRepo}
}

// Create godoc
// @Summary      Crear aviso de embarque contra una orden de compra
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentNoticeRequest  true  "purchase_order_id y líneas (item_id, shipped_quantity, actual_unit_price)"
// @Success      201  {object}  dto.ShipmentNoticeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipment-notices [post]
func (h *ReceivingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentNoticeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]receiving.NoticeLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, receiving.NoticeLineInput{
			ItemID:          l.ItemID,
			ShippedQuantity: l.ShippedQuantity,
			ActualUnitPrice: l.ActualUnitPrice,
		})
	}
	notice, err := h.uc.CreateShipmentNotice(c.Context(), receiving.CreateNoticeInput{
		PurchaseOrderID: in.PurchaseOrderID,
		Lines:           lines,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewShipmentNoticeResponse(notice))
}

// MarkArrived registra la llegada del embarque (solo desde in_transit).
func (h *ReceivingHandler) MarkArrived(c *fiber.Ctx) error {
	var in dto.MarkArrivedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.uc.MarkArrived(c.Context(), c.Params("id"), in.ArrivedAt); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "aviso marcado como llegado"})
}

// MarkProcessed marca el aviso como procesado (solo desde arrived, sin bloqueo).
func (h *ReceivingHandler) MarkProcessed(c *fiber.Ctx) error {
	if err := h.uc.MarkProcessed(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "aviso procesado"})
}

// Cancel cancela el aviso (nunca después de processed).
func (h *ReceivingHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "aviso cancelado"})
}

// UpdateLines reemplaza las líneas del aviso (solo in_transit).
func (h *ReceivingHandler) UpdateLines(c *fiber.Ctx) error {
	var in dto.CreateShipmentNoticeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]receiving.NoticeLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, receiving.NoticeLineInput{
			ItemID:          l.ItemID,
			ShippedQuantity: l.ShippedQuantity,
			ActualUnitPrice: l.ActualUnitPrice,
		})
	}
	if err := h.uc.UpdateLines(c.Context(), c.Params("id"), lines); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "líneas actualizadas"})
}

// Putaway godoc
// @Summary      Acomodar una línea del aviso en una ubicación
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del aviso"
// @Param        body  body  dto.PutawayRequest  true  "line_no, location_id, quantity"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipment-notices/{id}/putaway [post]
func (h *ReceivingHandler) Putaway(c *fiber.Ctx) error {
	var in dto.PutawayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Putaway(c.Context(), c.Params("id"), receiving.Placement{
		LineNo:     in.LineNo,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "acomodo registrado"})
}

// BulkPutaway acomoda un lote de colocaciones, todo o nada.
func (h *ReceivingHandler) BulkPutaway(c *fiber.Ctx) error {
	var in dto.BulkPutawayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	placements := make([]receiving.Placement, 0, len(in.Placements))
	for _, p := range in.Placements {
		placements = append(placements, receiving.Placement{
			LineNo:     p.LineNo,
			LocationID: p.LocationID,
			Quantity:   p.Quantity,
		})
	}
	if err := h.uc.BulkPutaway(c.Context(), c.Params("id"), placements); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "acomodo en lote registrado"})
}

// PutawayComplete informa si el acomodo del aviso está completo.
func (h *ReceivingHandler) PutawayComplete(c *fiber.Ctx) error {
	complete, err := h.uc.CompletePutaway(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"complete": complete})
}

// BlockPutaway bloquea el acomodo del aviso.
func (h *ReceivingHandler) BlockPutaway(c *fiber.Ctx) error {
	if err := h.uc.SetPutawayBlocked(c.Context(), c.Params("id"), true); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "acomodo bloqueado"})
}

// UnblockPutaway desbloquea el acomodo del aviso.
func (h *ReceivingHandler) UnblockPutaway(c *fiber.Ctx) error {
	if err := h.uc.SetPutawayBlocked(c.Context(), c.Params("id"), false); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "acomodo desbloqueado"})
}

// GetByID devuelve el aviso con sus líneas.
func (h *ReceivingHandler) GetByID(c *fiber.Ctx) error {
	notice, err := h.noticeRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if notice == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aviso no encontrado"})
	}
	return c.JSON(dto.NewShipmentNoticeResponse(notice))
}

// List lista avisos (snapshot de solo lectura).
func (h *ReceivingHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	notices, err := h.noticeRepo.List(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	resp := make([]dto.ShipmentNoticeResponse, 0, len(notices))
	for _, n := range notices {
		resp = append(resp, dto.NewShipmentNoticeResponse(n))
	}
	return c.JSON(fiber.Map{"total": len(resp), "notices": resp})
}
