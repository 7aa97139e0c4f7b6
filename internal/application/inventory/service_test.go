package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockbook/internal/application/inventory"
	"github.com/jhoicas/stockbook/internal/application/ports"
	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository/mocks"
	"github.com/jhoicas/stockbook/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// recordingMetrics registra las llamadas al puerto de métricas.
type recordingMetrics struct {
	mu         sync.Mutex
	recorded   []entity.MovementType
	units      int
	rejections []string
}

func (m *recordingMetrics) MovementRecorded(typ entity.MovementType, units int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, typ)
	m.units += units
}

func (m *recordingMetrics) StockRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections = append(m.rejections, reason)
}

func newService(t *testing.T, opts ...inventory.Option) (*inventory.WarehouseService, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository("Central")
	var mu sync.Mutex
	clock := t0
	opts = append([]inventory.Option{inventory.WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	})}, opts...)
	return inventory.NewWarehouseService(repo, repo, opts...), repo
}

func create(t *testing.T, svc *inventory.WarehouseService, id string, price int64, qty int) {
	t.Helper()
	_, err := svc.CreateProduct(context.Background(), inventory.CreateProductInput{
		ID: id, Name: id, Price: decimal.NewFromInt(price), InitialQuantity: qty,
	})
	require.NoError(t, err)
}

func TestWarehouseService_EscenarioDeReferencia(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "LAPTOP-001", 1200, 5)
	create(t, svc, "MOUSE-001", 25, 50)

	_, err := svc.AddToStock(ctx, "LAPTOP-001", 3, "Compra", "admin")
	require.NoError(t, err)
	_, err = svc.RemoveFromStock(ctx, "LAPTOP-001", 2, "Venta", "vendedor")
	require.NoError(t, err)
	_, err = svc.AddToStock(ctx, "MOUSE-001", 10, "Compra", "admin")
	require.NoError(t, err)

	laptop, err := svc.GetProduct(ctx, "LAPTOP-001")
	require.NoError(t, err)
	assert.Equal(t, 6, laptop.Quantity)

	ms, err := svc.GetMovements(ctx)
	require.NoError(t, err)
	assert.Len(t, ms, 3)

	total, err := svc.GetTotalInventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(8700)), "total = %s", total)
}

func TestWarehouseService_StockInsuficiente(t *testing.T) {
	ctx := context.Background()
	metrics := &recordingMetrics{}
	svc, _ := newService(t, inventory.WithMetrics(metrics))
	create(t, svc, "LAPTOP-001", 1200, 5)

	mov, err := svc.RemoveFromStock(ctx, "LAPTOP-001", 10, "Venta", "vendedor")
	assert.Nil(t, mov)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 10, insufficient.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := svc.GetProduct(ctx, "LAPTOP-001")
	assert.Equal(t, 5, p.Quantity)
	ms, _ := svc.GetMovements(ctx)
	assert.Empty(t, ms)
	assert.Equal(t, []string{"insufficient_stock"}, metrics.rejections)
}

func TestWarehouseService_EntradaYSalidaSeCompensan(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 10, 4)

	in, err := svc.AddToStock(ctx, "A", 7, "", "")
	require.NoError(t, err)
	out, err := svc.RemoveFromStock(ctx, "A", 7, "", "")
	require.NoError(t, err)

	p, _ := svc.GetProduct(ctx, "A")
	assert.Equal(t, 4, p.Quantity)
	assert.Equal(t, 7, in.QuantityChange)
	assert.Equal(t, -7, out.QuantityChange)
	assert.Equal(t, entity.MovementTypeIN, in.Type)
	assert.Equal(t, entity.MovementTypeOUT, out.Type)
	assert.Equal(t, entity.DefaultPerformedBy, in.PerformedBy)

	ms, _ := svc.GetMovements(ctx)
	require.Len(t, ms, 2)
	assert.Equal(t, 0, ms[0].QuantityChange+ms[1].QuantityChange)
}

func TestWarehouseService_CantidadNoPositivaRechazada(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 10, 4)

	for _, q := range []int{0, -3} {
		_, err := svc.AddToStock(ctx, "A", q, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.RemoveFromStock(ctx, "A", q, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	ms, _ := svc.GetMovements(ctx)
	assert.Empty(t, ms)
}

func TestWarehouseService_ProductoDesconocido(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.AddToStock(ctx, "NOPE", 1, "", "")
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "NOPE", nf.ID)

	_, err = svc.RemoveFromStock(ctx, "NOPE", 1, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := svc.GetProduct(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestWarehouseService_CreateProduct_Errores(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	create(t, svc, "A", 10, 1)

	_, err := svc.CreateProduct(ctx, inventory.CreateProductInput{ID: "A", Price: decimal.NewFromInt(1)})
	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))

	_, err = svc.CreateProduct(ctx, inventory.CreateProductInput{ID: "B", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// ningún producto parcial quedó almacenado
	all, _ := repo.LoadAllProducts(ctx)
	assert.Len(t, all, 1)
}

func TestWarehouseService_CorrectStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 10, 4)

	mov, err := svc.CorrectStock(ctx, "A", -3, "merma", "auditor")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeCORRECTION, mov.Type)
	assert.Equal(t, -3, mov.QuantityChange)
	assert.Equal(t, "auditor", mov.PerformedBy)

	_, err = svc.CorrectStock(ctx, "A", -2, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CorrectStock(ctx, "A", 0, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, _ := svc.GetProduct(ctx, "A")
	assert.Equal(t, 1, p.Quantity)
	ms, _ := svc.GetMovements(ctx)
	assert.Len(t, ms, 1)
}

func TestWarehouseService_RetireProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 10, 4)
	_, err := svc.AddToStock(ctx, "A", 1, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.RetireProduct(ctx, "A"))
	assert.ErrorIs(t, svc.RetireProduct(ctx, "A"), domain.ErrNotFound)

	p, _ := svc.GetProduct(ctx, "A")
	assert.Nil(t, p)
	ms, _ := svc.GetMovementsByProduct(ctx, "A")
	assert.Len(t, ms, 1)

	_, err = svc.AddToStock(ctx, "A", 1, "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseService_GetMovementsByProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 10, 4)
	create(t, svc, "B", 10, 4)
	_, _ = svc.AddToStock(ctx, "A", 1, "", "")
	_, _ = svc.AddToStock(ctx, "B", 1, "", "")
	_, _ = svc.RemoveFromStock(ctx, "A", 2, "", "")

	ms, err := svc.GetMovementsByProduct(ctx, "A")
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, 1, ms[0].QuantityChange)
	assert.Equal(t, -2, ms[1].QuantityChange)
}

func TestWarehouseService_GetInventoryReport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "LAPTOP-001", 1200, 5)

	report, err := svc.GetInventoryReport(ctx)
	require.NoError(t, err)
	line := report["LAPTOP-001"]
	assert.Equal(t, 5, line.Quantity)
	assert.True(t, line.TotalValue.Equal(decimal.NewFromInt(6000)))
}

func TestWarehouseService_LecturasMasivasSonCopias(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 10, 4)

	all, _ := svc.GetAllProducts(ctx)
	all["A"].Quantity = 1000
	delete(all, "A")

	again, _ := svc.GetAllProducts(ctx)
	require.Contains(t, again, "A")
	assert.Equal(t, 4, again["A"].Quantity)
}

func TestWarehouseService_SalidasConcurrentesNoPierdenActualizaciones(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 1, 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.RemoveFromStock(ctx, "A", 1, "", "")
		}()
	}
	wg.Wait()

	p, _ := svc.GetProduct(ctx, "A")
	assert.Equal(t, 50, p.Quantity)
	ms, _ := svc.GetMovements(ctx)
	assert.Len(t, ms, 50)
}

func TestWarehouseService_Metricas(t *testing.T) {
	ctx := context.Background()
	metrics := &recordingMetrics{}
	svc, _ := newService(t, inventory.WithMetrics(metrics))
	create(t, svc, "A", 1, 10)

	_, _ = svc.AddToStock(ctx, "A", 4, "", "")
	_, _ = svc.RemoveFromStock(ctx, "A", 3, "", "")
	_, _ = svc.AddToStock(ctx, "A", 0, "", "")
	_, _ = svc.AddToStock(ctx, "NOPE", 1, "", "")

	assert.Equal(t, []entity.MovementType{entity.MovementTypeIN, entity.MovementTypeOUT}, metrics.recorded)
	assert.Equal(t, 7, metrics.units)
	assert.Equal(t, []string{"invalid_quantity", "not_found"}, metrics.rejections)
}

func TestWarehouseService_Report(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A", 1, 10)
	_, _ = svc.AddToStock(ctx, "A", 1, "", "")

	var gotProducts, gotMovements int
	factory := func(products map[string]*entity.Product, movements []*entity.Movement) ports.ReportPort {
		gotProducts, gotMovements = len(products), len(movements)
		return nil
	}
	_, err := svc.Report(ctx, factory)
	require.NoError(t, err)
	assert.Equal(t, 1, gotProducts)
	assert.Equal(t, 1, gotMovements)
}

// ── Caminos de fallo con repositorio mock ─────────────────────────────────────

func mockProduct(t *testing.T, qty int) *entity.Product {
	t.Helper()
	p, err := entity.NewProduct(entity.ProductParams{ID: "A", Name: "A", Price: decimal.NewFromInt(10), Quantity: qty}, t0)
	require.NoError(t, err)
	return p
}

func TestWarehouseService_FalloAlCargarSePropaga(t *testing.T) {
	repo := new(mocks.MockRepository)
	boom := errors.New("conexión perdida")
	repo.On("LoadProduct", mock.Anything, "A").Return(nil, boom).Once()

	svc := inventory.NewWarehouseService(repo, nil)
	_, err := svc.AddToStock(context.Background(), "A", 1, "", "")

	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SaveProduct", mock.Anything, mock.Anything)
}

func TestWarehouseService_SalidaInsuficienteNoEscribe(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("LoadProduct", mock.Anything, "A").Return(mockProduct(t, 5), nil).Once()

	svc := inventory.NewWarehouseService(repo, nil)
	_, err := svc.RemoveFromStock(context.Background(), "A", 10, "", "")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	repo.AssertNotCalled(t, "SaveProduct", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SaveMovement", mock.Anything, mock.Anything)
}

func TestWarehouseService_EscrituraOrdenada(t *testing.T) {
	repo := new(mocks.MockRepository)
	repo.On("LoadProduct", mock.Anything, "A").Return(mockProduct(t, 5), nil).Once()
	repo.On("SaveProduct", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.ID == "A" && p.Quantity == 8
	})).Return(nil).Once()
	repo.On("SaveMovement", mock.Anything, mock.MatchedBy(func(m *entity.Movement) bool {
		return m.ProductID == "A" && m.QuantityChange == 3 && m.Type == entity.MovementTypeIN
	})).Return(nil).Once()

	svc := inventory.NewWarehouseService(repo, nil)
	_, err := svc.AddToStock(context.Background(), "A", 3, "Compra", "ana")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestWarehouseService_FalloAlSumarValorSePropaga(t *testing.T) {
	repo := new(mocks.MockRepository)
	boom := errors.New("timeout")
	repo.On("LoadAllProducts", mock.Anything).Return(nil, boom).Once()

	svc := inventory.NewWarehouseService(repo, nil)
	total, err := svc.GetTotalInventoryValue(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, total.IsZero())
}
