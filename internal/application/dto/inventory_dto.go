package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/warehouse"
)

// StockRequest body para POST /api/products/:id/stock/in y /stock/out.
type StockRequest struct {
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	PerformedBy string `json:"performed_by,omitempty"`
}

// CorrectionRequest body para POST /api/products/:id/stock/correct.
// Delta con signo: positivo suma, negativo resta.
type CorrectionRequest struct {
	Delta       int    `json:"delta"`
	Reason      string `json:"reason"`
	PerformedBy string `json:"performed_by,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	QuantityChange int       `json:"quantity_change"`
	Type           string    `json:"type"`
	Reason         string    `json:"reason"`
	Timestamp      time.Time `json:"timestamp"`
	PerformedBy    string    `json:"performed_by"`
}

// MovementListResponse página del libro de movimientos en orden de inserción.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// InventoryValueResponse valor total del inventario.
type InventoryValueResponse struct {
	Warehouse  string          `json:"warehouse"`
	Products   int             `json:"products"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryReportResponse reporte id → línea.
type InventoryReportResponse struct {
	Warehouse string                          `json:"warehouse"`
	Items     map[string]warehouse.ReportLine `json:"items"`
}

// MovementFromEntity convierte la entidad en respuesta.
func MovementFromEntity(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		QuantityChange: m.QuantityChange,
		Type:           string(m.Type),
		Reason:         m.Reason,
		Timestamp:      m.Timestamp,
		PerformedBy:    m.PerformedBy,
	}
}

// MovementsFromEntities convierte preservando el orden.
func MovementsFromEntities(ms []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MovementFromEntity(m))
	}
	return out
}
