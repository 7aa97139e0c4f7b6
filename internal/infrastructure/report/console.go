package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stockbook/internal/application/ports"
	"github.com/jhoicas/stockbook/internal/domain/entity"
)

var _ ports.ReportPort = (*ConsoleReportAdapter)(nil)

const timestampLayout = "2006-01-02 15:04:05"

// ConsoleReportAdapter genera reportes de texto plano para consola.
type ConsoleReportAdapter struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
	printer   *message.Printer
}

// NewConsoleReportAdapter construye el adaptador sobre una instantánea.
// lang es un tag BCP 47 ("es", "en", "de"); si no se reconoce se usa español.
func NewConsoleReportAdapter(products map[string]*entity.Product, movements []*entity.Movement, lang string) *ConsoleReportAdapter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Spanish
	}
	return &ConsoleReportAdapter{
		products:  products,
		movements: movements,
		printer:   message.NewPrinter(tag),
	}
}

// ConsoleFactory adapta NewConsoleReportAdapter a ports.ReportFactory.
func ConsoleFactory(lang string) ports.ReportFactory {
	return func(products map[string]*entity.Product, movements []*entity.Movement) ports.ReportPort {
		return NewConsoleReportAdapter(products, movements, lang)
	}
}

// GenerateInventoryReport reporte de inventario, productos ordenados por ID.
func (a *ConsoleReportAdapter) GenerateInventoryReport() string {
	if len(a.products) == 0 {
		return "Inventario vacío.\n"
	}

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("REPORTE DE INVENTARIO\n")
	b.WriteString(rule + "\n\n")

	ids := make([]string, 0, len(a.products))
	for id := range a.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var total float64
	for _, id := range ids {
		p := a.products[id]
		value := p.TotalValue().InexactFloat64()
		total += value
		fmt.Fprintf(&b, "ID: %s\n", id)
		fmt.Fprintf(&b, "  Nombre: %s\n", p.Name)
		fmt.Fprintf(&b, "  Categoría: %s\n", p.Category)
		fmt.Fprintf(&b, "  Stock: %d\n", p.Quantity)
		fmt.Fprintf(&b, "  Precio: %s €\n", a.money(p.Price.InexactFloat64()))
		fmt.Fprintf(&b, "  Valor total: %s €\n\n", a.money(value))
	}

	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Valor total del inventario: %s €\n", a.money(total))
	b.WriteString(rule + "\n")
	return b.String()
}

// GenerateMovementReport libro de movimientos ordenado por timestamp ascendente.
// El libro no está garantizado en orden: los movimientos pueden venir con fecha retroactiva.
func (a *ConsoleReportAdapter) GenerateMovementReport() string {
	if len(a.movements) == 0 {
		return "No hay movimientos registrados.\n"
	}

	sorted := make([]*entity.Movement, len(a.movements))
	copy(sorted, a.movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	b.WriteString(rule + "\n")
	b.WriteString("LIBRO DE MOVIMIENTOS\n")
	b.WriteString(rule + "\n\n")

	for _, m := range sorted {
		fmt.Fprintf(&b, "[%s]\n", m.Timestamp.Format(timestampLayout))
		fmt.Fprintf(&b, "  Producto: %s (ID: %s)\n", m.ProductName, m.ProductID)
		fmt.Fprintf(&b, "  Tipo: %s\n", m.Type)
		fmt.Fprintf(&b, "  Cantidad: %+d\n", m.QuantityChange)
		if m.Reason != "" {
			fmt.Fprintf(&b, "  Motivo: %s\n", m.Reason)
		}
		fmt.Fprintf(&b, "  Realizado por: %s\n\n", m.PerformedBy)
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total de movimientos: %d\n", len(sorted))
	b.WriteString(rule + "\n")
	return b.String()
}

func (a *ConsoleReportAdapter) money(v float64) string {
	return a.printer.Sprintf("%.2f", v)
}
