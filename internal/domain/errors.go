package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrQuantityVariance  = errors.New("cantidad embarcada excede la tolerancia sobre lo ordenado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCapacityExceeded  = errors.New("capacidad de la ubicación excedida")
	ErrDuplicate         = errors.New("recurso duplicado")
)
