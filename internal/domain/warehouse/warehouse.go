// Package warehouse contiene el agregado Warehouse: productos por ID más el
// libro ordenado de movimientos. Sus reglas (ID único, movimientos solo
// contra productos registrados) son la validación del almacén en memoria.
package warehouse

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
)

// ReportLine fila del reporte de inventario.
type ReportLine struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Warehouse agregado raíz. No es seguro para uso concurrente.
type Warehouse struct {
	Name      string
	products  map[string]*entity.Product
	movements []*entity.Movement
}

// New construye un almacén vacío.
func New(name string) *Warehouse {
	return &Warehouse{
		Name:     name,
		products: make(map[string]*entity.Product),
	}
}

// AddProduct registra un producto nuevo; falla con DuplicateError si el ID ya existe.
func (w *Warehouse) AddProduct(p *entity.Product) error {
	if _, ok := w.products[p.ID]; ok {
		return &domain.DuplicateError{ID: p.ID}
	}
	w.products[p.ID] = p
	return nil
}

// PutProduct reemplaza un producto ya registrado.
func (w *Warehouse) PutProduct(p *entity.Product) error {
	if _, ok := w.products[p.ID]; !ok {
		return &domain.NotFoundError{ID: p.ID}
	}
	w.products[p.ID] = p
	return nil
}

// GetProduct devuelve el producto o nil si no existe.
func (w *Warehouse) GetProduct(id string) *entity.Product {
	return w.products[id]
}

// HasProduct indica si id está registrado.
func (w *Warehouse) HasProduct(id string) bool {
	_, ok := w.products[id]
	return ok
}

// RemoveProduct elimina el producto; los movimientos existentes se conservan.
// Devuelve false si no existía.
func (w *Warehouse) RemoveProduct(id string) bool {
	if _, ok := w.products[id]; !ok {
		return false
	}
	delete(w.products, id)
	return true
}

// RecordMovement agrega m al libro; falla con ReferenceError si el producto no está registrado.
func (w *Warehouse) RecordMovement(m *entity.Movement) error {
	if _, ok := w.products[m.ProductID]; !ok {
		return &domain.ReferenceError{ProductID: m.ProductID}
	}
	w.movements = append(w.movements, m)
	return nil
}

// TotalInventoryValue suma TotalValue de todos los productos.
func (w *Warehouse) TotalInventoryValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range w.products {
		total = total.Add(p.TotalValue())
	}
	return total
}

// InventoryReport instantánea id → {name, quantity, price, total_value}.
func (w *Warehouse) InventoryReport() map[string]ReportLine {
	report := make(map[string]ReportLine, len(w.products))
	for id, p := range w.products {
		report[id] = ReportLine{
			Name:       p.Name,
			Quantity:   p.Quantity,
			Price:      p.Price,
			TotalValue: p.TotalValue(),
		}
	}
	return report
}

// Products copia de los productos registrados.
func (w *Warehouse) Products() map[string]*entity.Product {
	out := make(map[string]*entity.Product, len(w.products))
	for id, p := range w.products {
		out[id] = p.Clone()
	}
	return out
}

// ProductIDs IDs ordenados alfabéticamente.
func (w *Warehouse) ProductIDs() []string {
	ids := make([]string, 0, len(w.products))
	for id := range w.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Movements copia del libro en orden de inserción.
func (w *Warehouse) Movements() []*entity.Movement {
	out := make([]*entity.Movement, len(w.movements))
	for i, m := range w.movements {
		out[i] = m.Clone()
	}
	return out
}

// Len cantidad de productos registrados.
func (w *Warehouse) Len() int { return len(w.products) }
