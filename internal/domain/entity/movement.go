package entity

import (
	"time"

	"github.com/google/uuid"
)

// MovementType tipo de movimiento de inventario (value object conceptual).
type MovementType string

// Tipos de movimiento. CORRECTION solo lo produce CorrectStock.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeCORRECTION MovementType = "CORRECTION" // corrección de inventario
)

// DefaultPerformedBy actor por defecto cuando el llamador no se identifica.
const DefaultPerformedBy = "system"

// Valid indica si t es un tipo de movimiento conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeCORRECTION:
		return true
	}
	return false
}

// Movement entrada inmutable del libro de movimientos.
// ProductName es una copia del nombre al momento del evento, para que el log
// siga siendo legible si el producto se renombra o se retira.
type Movement struct {
	ID             string
	ProductID      string
	ProductName    string
	QuantityChange int // positivo entradas, negativo salidas
	Type           MovementType
	Reason         string
	Timestamp      time.Time
	PerformedBy    string
}

// NewMovement crea un movimiento para product. El ID deriva del timestamp (UUIDv7).
func NewMovement(product *Product, change int, typ MovementType, reason, performedBy string, now time.Time) *Movement {
	if performedBy == "" {
		performedBy = DefaultPerformedBy
	}
	return &Movement{
		ID:             newMovementID(),
		ProductID:      product.ID,
		ProductName:    product.Name,
		QuantityChange: change,
		Type:           typ,
		Reason:         reason,
		Timestamp:      now,
		PerformedBy:    performedBy,
	}
}

// Clone copia del movimiento.
func (m *Movement) Clone() *Movement {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func newMovementID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "mov_" + id.String()
}
