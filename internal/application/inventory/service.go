package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockbook/internal/application/ports"
	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository"
	"github.com/jhoicas/stockbook/internal/domain/warehouse"
)

// WarehouseService orquesta repositorio y reglas de dominio para los casos de uso
// de inventario. Es el único componente con el que hablan las capas de presentación.
type WarehouseService struct {
	repo    repository.RepositoryPort
	tx      repository.TxRunner
	locks   *keyedMutex
	metrics ports.StockMetrics
	log     zerolog.Logger
	now     func() time.Time
	name    string
}

// Option configura el servicio.
type Option func(*WarehouseService)

// WithMetrics inyecta el adaptador de métricas.
func WithMetrics(m ports.StockMetrics) Option {
	return func(s *WarehouseService) { s.metrics = m }
}

// WithLogger inyecta el logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *WarehouseService) { s.log = l }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *WarehouseService) { s.now = now }
}

// WithWarehouseName nombre del almacén usado en los reportes.
func WithWarehouseName(name string) Option {
	return func(s *WarehouseService) { s.name = name }
}

// NewWarehouseService construye el servicio. tx puede ser nil; en ese caso las
// secuencias de lectura-modificación-escritura se ejecutan directamente sobre repo.
func NewWarehouseService(repo repository.RepositoryPort, tx repository.TxRunner, opts ...Option) *WarehouseService {
	s := &WarehouseService{
		repo:    repo,
		tx:      tx,
		locks:   newKeyedMutex(),
		metrics: ports.NopMetrics{},
		log:     zerolog.Nop(),
		now:     time.Now,
		name:    "Almacén principal",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProductInput entrada para crear un producto.
type CreateProductInput struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	Category        string
	SKU             string
	Notes           *string
	InitialQuantity int
}

// CreateProduct valida, persiste y registra un producto nuevo.
// ValidationError si los datos violan el invariante; DuplicateError si el ID ya existe.
func (s *WarehouseService) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	product, err := entity.NewProduct(entity.ProductParams{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.InitialQuantity,
		SKU:         in.SKU,
		Category:    in.Category,
		Notes:       in.Notes,
	}, s.now())
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(product.ID)
	defer unlock()

	err = s.runTx(ctx, func(repo repository.RepositoryPort) error {
		existing, err := repo.LoadProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateError{ID: product.ID}
		}
		return repo.SaveProduct(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("product_id", product.ID).Int("quantity", product.Quantity).Msg("producto creado")
	return product.Clone(), nil
}

// AddToStock incrementa el stock y registra un movimiento IN con +quantity.
func (s *WarehouseService) AddToStock(ctx context.Context, id string, quantity int, reason, user string) (*entity.Movement, error) {
	if quantity <= 0 {
		s.metrics.StockRejected("invalid_quantity")
		return nil, domain.NewValidationError("quantity", "la cantidad a ingresar debe ser mayor que cero")
	}
	return s.applyMovement(ctx, id, quantity, entity.MovementTypeIN, reason, user, nil)
}

// RemoveFromStock descuenta stock y registra un movimiento OUT con -quantity.
// InsufficientStockError (con disponible/solicitado) si quantity supera el stock.
func (s *WarehouseService) RemoveFromStock(ctx context.Context, id string, quantity int, reason, user string) (*entity.Movement, error) {
	if quantity <= 0 {
		s.metrics.StockRejected("invalid_quantity")
		return nil, domain.NewValidationError("quantity", "la cantidad a retirar debe ser mayor que cero")
	}
	precheck := func(p *entity.Product) error {
		if p.Quantity < quantity {
			return &domain.InsufficientStockError{ProductID: p.ID, Available: p.Quantity, Requested: quantity}
		}
		return nil
	}
	return s.applyMovement(ctx, id, -quantity, entity.MovementTypeOUT, reason, user, precheck)
}

// CorrectStock ajusta el stock con un delta con signo (inventario físico, mermas)
// y registra un movimiento CORRECTION.
func (s *WarehouseService) CorrectStock(ctx context.Context, id string, delta int, reason, user string) (*entity.Movement, error) {
	if delta == 0 {
		s.metrics.StockRejected("invalid_quantity")
		return nil, domain.NewValidationError("delta", "la corrección no puede ser cero")
	}
	return s.applyMovement(ctx, id, delta, entity.MovementTypeCORRECTION, reason, user, nil)
}

// applyMovement: load → check → ChangeQuantity → save → append, bajo lock por producto
// y dentro de TxRunner. Un fallo no deja cambios.
func (s *WarehouseService) applyMovement(
	ctx context.Context,
	id string,
	delta int,
	typ entity.MovementType,
	reason, user string,
	precheck func(*entity.Product) error,
) (*entity.Movement, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	var mov *entity.Movement
	err := s.runTx(ctx, func(repo repository.RepositoryPort) error {
		product, err := repo.LoadProduct(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{ID: id}
		}
		if precheck != nil {
			if err := precheck(product); err != nil {
				return err
			}
		}
		now := s.now()
		if err := product.ChangeQuantity(delta, now); err != nil {
			return err
		}
		if err := repo.SaveProduct(ctx, product); err != nil {
			return err
		}
		mov = entity.NewMovement(product, delta, typ, reason, user, now)
		return repo.SaveMovement(ctx, mov)
	})
	if err != nil {
		s.metrics.StockRejected(rejectionReason(err))
		s.log.Warn().Err(err).Str("product_id", id).Str("type", string(typ)).Int("delta", delta).Msg("movimiento rechazado")
		return nil, err
	}

	s.metrics.MovementRecorded(typ, abs(delta))
	s.log.Debug().
		Str("movement_id", mov.ID).
		Str("product_id", id).
		Str("type", string(typ)).
		Int("delta", delta).
		Str("performed_by", mov.PerformedBy).
		Msg("movimiento registrado")
	return mov.Clone(), nil
}

// RetireProduct elimina el producto del repositorio. El libro de movimientos se conserva.
func (s *WarehouseService) RetireProduct(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.runTx(ctx, func(repo repository.RepositoryPort) error {
		product, err := repo.LoadProduct(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{ID: id}
		}
		return repo.DeleteProduct(ctx, id)
	})
}

// GetProduct devuelve el producto o nil si no existe.
func (s *WarehouseService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.repo.LoadProduct(ctx, id)
}

// GetAllProducts instantánea id → producto.
func (s *WarehouseService) GetAllProducts(ctx context.Context) (map[string]*entity.Product, error) {
	return s.repo.LoadAllProducts(ctx)
}

// GetMovements instantánea del libro en orden de inserción.
func (s *WarehouseService) GetMovements(ctx context.Context) ([]*entity.Movement, error) {
	return s.repo.LoadMovements(ctx)
}

// GetMovementsByProduct movimientos de un producto en orden de inserción.
func (s *WarehouseService) GetMovementsByProduct(ctx context.Context, id string) ([]*entity.Movement, error) {
	all, err := s.repo.LoadMovements(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Movement, 0)
	for _, m := range all {
		if m.ProductID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetTotalInventoryValue recalcula desde el repositorio la suma de precio*cantidad.
func (s *WarehouseService) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.repo.LoadAllProducts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.TotalValue())
	}
	return total, nil
}

// GetInventoryReport reporte id → {name, quantity, price, total_value} sobre una instantánea fresca.
func (s *WarehouseService) GetInventoryReport(ctx context.Context) (map[string]warehouse.ReportLine, error) {
	wh, err := s.snapshotWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	return wh.InventoryReport(), nil
}

// Snapshot productos y movimientos para los adaptadores de reporte.
func (s *WarehouseService) Snapshot(ctx context.Context) (map[string]*entity.Product, []*entity.Movement, error) {
	products, err := s.repo.LoadAllProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	movements, err := s.repo.LoadMovements(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, movements, nil
}

// Report construye un ReportPort con la fábrica dada sobre una instantánea fresca.
func (s *WarehouseService) Report(ctx context.Context, factory ports.ReportFactory) (ports.ReportPort, error) {
	products, movements, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return factory(products, movements), nil
}

// WarehouseName nombre configurado del almacén.
func (s *WarehouseService) WarehouseName() string { return s.name }

// snapshotWarehouse arma un agregado transitorio; no se persiste.
func (s *WarehouseService) snapshotWarehouse(ctx context.Context) (*warehouse.Warehouse, error) {
	products, err := s.repo.LoadAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	wh := warehouse.New(s.name)
	for _, p := range products {
		if err := wh.AddProduct(p); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	return wh, nil
}

func (s *WarehouseService) runTx(ctx context.Context, fn func(repo repository.RepositoryPort) error) error {
	if s.tx == nil {
		return fn(s.repo)
	}
	return s.tx.Run(ctx, fn)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrReference):
		return "reference"
	default:
		return "internal"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
