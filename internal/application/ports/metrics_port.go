package ports

import "github.com/jhoicas/stockbook/internal/domain/entity"

// StockMetrics puerto de observabilidad para las operaciones de stock.
type StockMetrics interface {
	// MovementRecorded se invoca tras confirmar un movimiento; units es el valor absoluto.
	MovementRecorded(typ entity.MovementType, units int)
	// StockRejected se invoca cuando una operación de stock es rechazada.
	StockRejected(reason string)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(entity.MovementType, int) {}
func (NopMetrics) StockRejected(string)                      {}
