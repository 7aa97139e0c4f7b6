package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository"
	"github.com/jhoicas/stockbook/internal/domain/warehouse"
)

var (
	_ repository.RepositoryPort = (*Repository)(nil)
	_ repository.TxRunner       = (*Repository)(nil)
)

// Repository almacén en memoria. El agregado Warehouse es la única fuente de
// verdad y aplica las reglas de ID único y referencia a producto.
type Repository struct {
	mu sync.RWMutex
	wh *warehouse.Warehouse
}

// NewRepository construye un repositorio vacío para el almacén name.
func NewRepository(name string) *Repository {
	return &Repository{wh: warehouse.New(name)}
}

func (r *Repository) SaveProduct(ctx context.Context, product *entity.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("memory repository: id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return saveInto(r.wh, product.Clone())
}

func (r *Repository) LoadProduct(ctx context.Context, id string) (*entity.Product, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wh.GetProduct(id).Clone(), nil
}

func (r *Repository) LoadAllProducts(ctx context.Context) (map[string]*entity.Product, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wh.Products(), nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wh.RemoveProduct(id)
	return nil
}

func (r *Repository) SaveMovement(ctx context.Context, movement *entity.Movement) error {
	_ = ctx
	if movement == nil {
		return fmt.Errorf("memory repository: movement is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wh.RecordMovement(movement.Clone())
}

func (r *Repository) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wh.Movements(), nil
}

// Run ejecuta fn con el lock tomado sobre una vista en staging; solo si fn
// termina sin error los cambios se aplican al agregado.
func (r *Repository) Run(ctx context.Context, fn func(repo repository.RepositoryPort) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &txRepo{
		wh:      r.wh,
		staged:  make(map[string]*entity.Product),
		deleted: make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func saveInto(wh *warehouse.Warehouse, p *entity.Product) error {
	if wh.HasProduct(p.ID) {
		return wh.PutProduct(p)
	}
	return wh.AddProduct(p)
}

// txRepo vista transaccional: las escrituras quedan en staging hasta commit.
type txRepo struct {
	wh      *warehouse.Warehouse
	staged  map[string]*entity.Product
	order   []string
	deleted map[string]bool
	pending []*entity.Movement
}

func (t *txRepo) exists(id string) bool {
	if t.deleted[id] {
		return false
	}
	if _, ok := t.staged[id]; ok {
		return true
	}
	return t.wh.HasProduct(id)
}

func (t *txRepo) SaveProduct(_ context.Context, product *entity.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("memory repository: id is required")
	}
	if _, ok := t.staged[product.ID]; !ok {
		t.order = append(t.order, product.ID)
	}
	t.staged[product.ID] = product.Clone()
	delete(t.deleted, product.ID)
	return nil
}

func (t *txRepo) LoadProduct(_ context.Context, id string) (*entity.Product, error) {
	if t.deleted[id] {
		return nil, nil
	}
	if p, ok := t.staged[id]; ok {
		return p.Clone(), nil
	}
	return t.wh.GetProduct(id).Clone(), nil
}

func (t *txRepo) LoadAllProducts(_ context.Context) (map[string]*entity.Product, error) {
	out := t.wh.Products()
	for id, p := range t.staged {
		out[id] = p.Clone()
	}
	for id := range t.deleted {
		delete(out, id)
	}
	return out, nil
}

func (t *txRepo) DeleteProduct(_ context.Context, id string) error {
	t.deleted[id] = true
	return nil
}

func (t *txRepo) SaveMovement(_ context.Context, movement *entity.Movement) error {
	if movement == nil {
		return fmt.Errorf("memory repository: movement is required")
	}
	if !t.exists(movement.ProductID) {
		return &domain.ReferenceError{ProductID: movement.ProductID}
	}
	t.pending = append(t.pending, movement.Clone())
	return nil
}

func (t *txRepo) LoadMovements(_ context.Context) ([]*entity.Movement, error) {
	out := t.wh.Movements()
	for _, m := range t.pending {
		out = append(out, m.Clone())
	}
	return out, nil
}

// commit aplica productos, luego movimientos y por último bajas, de modo que
// cada movimiento encuentre su producto al registrarse.
func (t *txRepo) commit() error {
	for _, id := range t.order {
		if err := saveInto(t.wh, t.staged[id]); err != nil {
			return err
		}
	}
	for _, m := range t.pending {
		if err := t.wh.RecordMovement(m); err != nil {
			return err
		}
	}
	for id := range t.deleted {
		t.wh.RemoveProduct(id)
	}
	return nil
}
