package ports

import "github.com/jhoicas/stockbook/internal/domain/entity"

// ReportPort define el puerto de salida para la generación de reportes.
// Los adaptadores (consola, web, PDF) consumen una instantánea de solo lectura
// de productos y movimientos; ningún reporte modifica el dominio.
type ReportPort interface {
	GenerateInventoryReport() string
	GenerateMovementReport() string
}

// ReportFactory construye un ReportPort a partir de una instantánea.
type ReportFactory func(products map[string]*entity.Product, movements []*entity.Movement) ReportPort
