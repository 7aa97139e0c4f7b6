package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockbook/internal/domain"
)

// Product representa un artículo almacenado con identidad, precio y stock.
// Invariante: Price >= 0 y Quantity >= 0 en todo momento.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario
	Quantity    int
	SKU         string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Notes       *string
}

// ProductParams datos de construcción de un producto.
type ProductParams struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	SKU         string
	Category    string
	Notes       *string
}

// NewProduct valida y construye un producto. CreatedAt = UpdatedAt = now.
func NewProduct(p ProductParams, now time.Time) (*Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, domain.NewValidationError("id", "el ID del producto no puede estar vacío")
	}
	if p.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	if p.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "el stock no puede ser negativo")
	}
	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SKU:         p.SKU,
		Category:    p.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
		Notes:       cloneString(p.Notes),
	}, nil
}

// ChangeQuantity aplica delta al stock. Si el resultado fuera negativo no modifica nada.
func (p *Product) ChangeQuantity(delta int, now time.Time) error {
	newQty := p.Quantity + delta
	if newQty < 0 {
		return domain.NewValidationError("quantity", fmt.Sprintf("cantidad de stock inválida: %d", newQty))
	}
	p.Quantity = newQty
	p.UpdatedAt = now
	return nil
}

// TotalValue precio * cantidad (no se almacena).
func (p *Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Clone copia profunda; los repositorios nunca entregan referencias vivas.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Notes = cloneString(p.Notes)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
