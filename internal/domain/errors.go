package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrReference         = errors.New("referencia a producto inexistente")
)

// ValidationError estado de entidad inválido (precio/cantidad negativos, id vacío).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateError colisión de id al registrar un producto.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("producto con ID %s ya existe", e.ID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// NotFoundError la operación referencia un producto desconocido.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("producto %s no encontrado", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError la salida solicitada supera el stock disponible.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ReferenceError movimiento registrado contra un producto no registrado.
type ReferenceError struct {
	ProductID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("producto con ID %s no existe", e.ProductID)
}

func (e *ReferenceError) Unwrap() error { return ErrReference }
