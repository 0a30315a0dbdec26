package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// errorResponse mapea los errores de dominio a códigos HTTP. Los errores
// tipados viajan como resultado, nunca como pánico: aquí solo se traducen.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrQuantityVariance):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "QUANTITY_VARIANCE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrCapacityExceeded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAPACITY_EXCEEDED", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// paginación por defecto de los listados.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
