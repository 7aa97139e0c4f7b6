package warehouse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/warehouse"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func product(t *testing.T, id string, price int64, qty int) *entity.Product {
	t.Helper()
	p, err := entity.NewProduct(entity.ProductParams{ID: id, Name: id, Price: decimal.NewFromInt(price), Quantity: qty}, now)
	require.NoError(t, err)
	return p
}

func TestWarehouse_AddProduct_Duplicado(t *testing.T) {
	w := warehouse.New("Central")
	require.NoError(t, w.AddProduct(product(t, "A", 10, 1)))

	err := w.AddProduct(product(t, "A", 20, 2))
	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "A", dup.ID)
	assert.Equal(t, 1, w.Len())
}

func TestWarehouse_RecordMovement_ProductoInexistente(t *testing.T) {
	w := warehouse.New("Central")
	ghost := product(t, "GHOST", 1, 1)

	err := w.RecordMovement(entity.NewMovement(ghost, 1, entity.MovementTypeIN, "", "", now))
	assert.ErrorIs(t, err, domain.ErrReference)
	assert.Empty(t, w.Movements())
}

func TestWarehouse_ValorYReporte(t *testing.T) {
	w := warehouse.New("Central")
	require.NoError(t, w.AddProduct(product(t, "LAPTOP-001", 1200, 8)))
	require.NoError(t, w.AddProduct(product(t, "MOUSE-001", 25, 15)))

	assert.True(t, w.TotalInventoryValue().Equal(decimal.NewFromInt(9975)))

	report := w.InventoryReport()
	require.Len(t, report, 2)
	assert.Equal(t, 15, report["MOUSE-001"].Quantity)
	assert.True(t, report["MOUSE-001"].TotalValue.Equal(decimal.NewFromInt(375)))
	assert.Equal(t, []string{"LAPTOP-001", "MOUSE-001"}, w.ProductIDs())
}

func TestWarehouse_RemoveProduct_ConservaMovimientos(t *testing.T) {
	w := warehouse.New("Central")
	p := product(t, "A", 10, 1)
	require.NoError(t, w.AddProduct(p))
	require.NoError(t, w.RecordMovement(entity.NewMovement(p, 1, entity.MovementTypeIN, "", "", now)))

	assert.True(t, w.RemoveProduct("A"))
	assert.False(t, w.RemoveProduct("A"))
	assert.Nil(t, w.GetProduct("A"))
	assert.Len(t, w.Movements(), 1)
}

func TestWarehouse_PutProduct_NoRegistrado(t *testing.T) {
	w := warehouse.New("Central")
	assert.ErrorIs(t, w.PutProduct(product(t, "A", 1, 1)), domain.ErrNotFound)
}

func TestWarehouse_CopiasNoAlteranEstado(t *testing.T) {
	w := warehouse.New("Central")
	require.NoError(t, w.AddProduct(product(t, "A", 10, 1)))

	w.Products()["A"].Quantity = 100
	assert.Equal(t, 1, w.GetProduct("A").Quantity)
}
