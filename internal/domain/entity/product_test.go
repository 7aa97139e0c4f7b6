package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func laptop(t *testing.T) *entity.Product {
	t.Helper()
	p, err := entity.NewProduct(entity.ProductParams{
		ID:       "LAPTOP-001",
		Name:     "Laptop Dell XPS 15",
		Price:    decimal.NewFromInt(1200),
		Quantity: 5,
		Category: "Informática",
	}, t0)
	require.NoError(t, err)
	return p
}

func TestNewProduct_Valido(t *testing.T) {
	p := laptop(t)
	assert.Equal(t, "LAPTOP-001", p.ID)
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, t0, p.CreatedAt)
	assert.Equal(t, t0, p.UpdatedAt)
	assert.True(t, p.TotalValue().Equal(decimal.NewFromInt(6000)))
}

func TestNewProduct_Invalido(t *testing.T) {
	cases := map[string]entity.ProductParams{
		"precio negativo":   {ID: "X", Price: decimal.NewFromInt(-1), Quantity: 1},
		"cantidad negativa": {ID: "X", Price: decimal.NewFromInt(1), Quantity: -1},
		"id vacío":          {ID: "  ", Price: decimal.NewFromInt(1), Quantity: 1},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := entity.NewProduct(params, t0)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestNewProduct_PrecioYCantidadCeroPermitidos(t *testing.T) {
	p, err := entity.NewProduct(entity.ProductParams{ID: "FREE", Price: decimal.Zero}, t0)
	require.NoError(t, err)
	assert.True(t, p.TotalValue().IsZero())
}

func TestChangeQuantity_ActualizaStockYUpdatedAt(t *testing.T) {
	p := laptop(t)
	later := t0.Add(time.Hour)

	require.NoError(t, p.ChangeQuantity(3, later))
	assert.Equal(t, 8, p.Quantity)
	assert.Equal(t, later, p.UpdatedAt)
	assert.Equal(t, t0, p.CreatedAt)

	require.NoError(t, p.ChangeQuantity(-8, later))
	assert.Equal(t, 0, p.Quantity)
}

func TestChangeQuantity_NegativoNoModifica(t *testing.T) {
	p := laptop(t)
	err := p.ChangeQuantity(-6, t0.Add(time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "-1")
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, t0, p.UpdatedAt)
}

func TestClone_EsIndependiente(t *testing.T) {
	notes := "frágil"
	p := laptop(t)
	p.Notes = &notes

	c := p.Clone()
	c.Quantity = 99
	*c.Notes = "otro"

	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, "frágil", *p.Notes)

	var nilProduct *entity.Product
	assert.Nil(t, nilProduct.Clone())
}
