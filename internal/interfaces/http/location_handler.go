package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LocationHandler maneja las ubicaciones de almacenamiento y la sugerencia
// de destino para guardado (protegido).
type LocationHandler struct {
	capacity *ledger.CapacityManager
	locRepo  repository.StorageLocationRepository
	invRepo  repository.InventoryRecordRepository
}

// NewLocationHandler construye el handler.
func NewLocationHandler(capacity *ledger.CapacityManager, locRepo repository.StorageLocationRepository, invRepo repository.InventoryRecordRepository) *LocationHandler {
	return &LocationHandler{capacity: capacity, locRepo: locRepo, invRepo: invRepo}
}

// Create godoc
// @Summary      Crear ubicación de almacenamiento
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "nombre, capacidad y restricción opcional de tipo"
// @Success      201  {object}  dto.LocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Capacity.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre requerido y capacidad positiva"})
	}
	now := time.Now().UTC()
	location := &entity.StorageLocation{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Capacity:     in.Capacity,
		ItemTypeOnly: in.ItemTypeOnly,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.locRepo.Create(c.Context(), location); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLocationResponse(location))
}

// List lista ubicaciones con su utilización actual.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	locations, err := h.locRepo.List(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	type locationWithUsage struct {
		dto.LocationResponse
		Used decimal.Decimal `json:"used"`
	}
	resp := make([]locationWithUsage, 0, len(locations))
	for _, l := range locations {
		used, err := h.invRepo.UtilizationByLocation(c.Context(), l.ID)
		if err != nil {
			return errorResponse(c, err)
		}
		resp = append(resp, locationWithUsage{LocationResponse: dto.NewLocationResponse(l), Used: used})
	}
	return c.JSON(fiber.Map{"total": len(resp), "locations": resp})
}

// GetByID devuelve la ubicación con sus registros actuales.
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	location, err := h.locRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if location == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
	}
	records, err := h.invRepo.ListByLocation(c.Context(), location.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	recs := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		recs = append(recs, dto.NewInventoryRecordResponse(r))
	}
	return c.JSON(fiber.Map{"location": dto.NewLocationResponse(location), "records": recs})
}

// Suggest godoc
// @Summary      Sugerir ubicación de guardado para un ítem
// @Description  Prefiere una ubicación que ya contenga el ítem con capacidad residual; si no, la elegible con más espacio libre.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        item_id   query  string  true  "ítem a guardar"
// @Param        quantity  query  string  true  "cantidad a guardar"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse  "ninguna ubicación puede recibir la cantidad"
// @Router       /api/locations/suggest [get]
func (h *LocationHandler) Suggest(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	qty, err := decimal.NewFromString(c.Query("quantity"))
	if itemID == "" || err != nil || qty.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y quantity positiva requeridos"})
	}
	location, err := h.capacity.SuggestLocation(c.Context(), itemID, qty)
	if err != nil {
		return errorResponse(c, err)
	}
	if location == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ninguna ubicación elegible con capacidad suficiente"})
	}
	return c.JSON(dto.NewLocationResponse(location))
}
