package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/stockbook/internal/application/ports"
	"github.com/jhoicas/stockbook/internal/domain/entity"
)

var _ ports.StockMetrics = (*StockMetrics)(nil)

// StockMetrics contadores Prometheus de movimientos de stock.
type StockMetrics struct {
	movements  *prometheus.CounterVec
	units      *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// NewStockMetrics registra los contadores en reg (prometheus.DefaultRegisterer si es nil).
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &StockMetrics{
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockbook_movements_total",
			Help: "Movimientos de stock registrados por tipo.",
		}, []string{"type"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockbook_units_moved_total",
			Help: "Unidades movidas (valor absoluto) por tipo de movimiento.",
		}, []string{"type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockbook_stock_rejections_total",
			Help: "Operaciones de stock rechazadas por motivo.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.movements, m.units, m.rejections)
	return m
}

func (m *StockMetrics) MovementRecorded(typ entity.MovementType, units int) {
	m.movements.WithLabelValues(string(typ)).Inc()
	m.units.WithLabelValues(string(typ)).Add(float64(units))
}

func (m *StockMetrics) StockRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}
