package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryHandler maneja las consultas del libro de inventario y las
// operaciones directas sobre él: traslados y cambios de estado (protegido).
type InventoryHandler struct {
	uc      *ledger.UseCase
	invRepo repository.InventoryRecordRepository
	movRepo repository.StockMovementRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase, invRepo repository.InventoryRecordRepository, movRepo repository.StockMovementRepository) *InventoryHandler {
	return &InventoryHandler{uc: uc, invRepo: invRepo, movRepo: movRepo}
}

// List godoc
// @Summary      Listar registros de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  false  "filtrar por ítem"
// @Param        location_id  query  string  false  "filtrar por ubicación"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var (
		records []*entity.InventoryRecord
		err     error
	)
	switch {
	case c.Query("item_id") != "":
		records, err = h.invRepo.ListByItem(c.Context(), c.Query("item_id"))
	case c.Query("location_id") != "":
		records, err = h.invRepo.ListByLocation(c.Context(), c.Query("location_id"))
	default:
		limit, offset := pagination(c)
		records, err = h.invRepo.List(c.Context(), limit, offset)
	}
	if err != nil {
		return errorResponse(c, err)
	}
	resp := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.NewInventoryRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(resp), "records": resp})
}

// ListMovements devuelve el libro de movimientos, opcionalmente por ítem.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	var (
		movements []*entity.StockMovement
		err       error
	)
	if itemID := c.Query("item_id"); itemID != "" {
		movements, err = h.movRepo.ListByItem(c.Context(), itemID, limit, offset)
	} else {
		movements, err = h.movRepo.List(c.Context(), limit, offset)
	}
	if err != nil {
		return errorResponse(c, err)
	}
	resp := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, dto.NewStockMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(resp), "movements": resp})
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Salida y entrada en una sola transacción; la cantidad total se conserva.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "ítem, origen, destino y cantidad"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse  "stock insuficiente o capacidad excedida"
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.TransferStock(c.Context(), in.ItemID, in.FromLocationID, in.ToLocationID, in.Quantity, in.SourceRef)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "traslado registrado"})
}

// UpdateStatus cambia el estado de un registro sin tocar cantidades.
func (h *InventoryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInventoryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	status := entity.InventoryStatus(in.Status)
	if !status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado de inventario desconocido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), in.ItemID, in.LocationID, status, in.Notes); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}
