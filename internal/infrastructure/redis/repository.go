package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository"
)

var (
	_ repository.RepositoryPort = (*Repository)(nil)
	_ repository.TxRunner       = (*Repository)(nil)
)

// maxTxRetries reintentos de Run cuando WATCH detecta una escritura concurrente.
const maxTxRetries = 5

// Repository RepositoryPort sobre Redis: productos en un hash (JSON por id) y
// el libro de movimientos en una lista (RPUSH, orden de inserción).
type Repository struct {
	client *redis.Client
	prefix string
}

// NewRepository construye el adaptador. prefix separa los datos de varias instancias.
func NewRepository(client *redis.Client, prefix string) *Repository {
	if prefix == "" {
		prefix = "stockbook"
	}
	return &Repository{client: client, prefix: prefix}
}

func (r *Repository) productsKey() string  { return r.prefix + ":products" }
func (r *Repository) movementsKey() string { return r.prefix + ":movements" }

type productDoc struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type movementDoc struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	QuantityChange int       `json:"quantity_change"`
	Type           string    `json:"type"`
	Reason         string    `json:"reason,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	PerformedBy    string    `json:"performed_by"`
}

func (r *Repository) SaveProduct(ctx context.Context, p *entity.Product) error {
	return saveProduct(ctx, r.client, r.productsKey(), p)
}

func (r *Repository) LoadProduct(ctx context.Context, id string) (*entity.Product, error) {
	return loadProduct(ctx, r.client, r.productsKey(), id)
}

func (r *Repository) LoadAllProducts(ctx context.Context) (map[string]*entity.Product, error) {
	values, err := r.client.HGetAll(ctx, r.productsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list products: %w", err)
	}
	out := make(map[string]*entity.Product, len(values))
	for id, raw := range values {
		p, err := decodeProduct(raw)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	if err := r.client.HDel(ctx, r.productsKey(), id).Err(); err != nil {
		return fmt.Errorf("redis: delete product: %w", err)
	}
	return nil
}

func (r *Repository) SaveMovement(ctx context.Context, m *entity.Movement) error {
	exists, err := r.client.HExists(ctx, r.productsKey(), m.ProductID).Result()
	if err != nil {
		return fmt.Errorf("redis: check product: %w", err)
	}
	if !exists {
		return &domain.ReferenceError{ProductID: m.ProductID}
	}
	payload, err := encodeMovement(m)
	if err != nil {
		return err
	}
	if err := r.client.RPush(ctx, r.movementsKey(), payload).Err(); err != nil {
		return fmt.Errorf("redis: save movement: %w", err)
	}
	return nil
}

func (r *Repository) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	values, err := r.client.LRange(ctx, r.movementsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list movements: %w", err)
	}
	out := make([]*entity.Movement, 0, len(values))
	for _, raw := range values {
		var doc movementDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("redis: decode movement: %w", err)
		}
		out = append(out, &entity.Movement{
			ID:             doc.ID,
			ProductID:      doc.ProductID,
			ProductName:    doc.ProductName,
			QuantityChange: doc.QuantityChange,
			Type:           entity.MovementType(doc.Type),
			Reason:         doc.Reason,
			Timestamp:      doc.Timestamp,
			PerformedBy:    doc.PerformedBy,
		})
	}
	return out, nil
}

// Run concurrencia optimista: WATCH sobre el hash de productos; las escrituras
// de fn se encolan en un MULTI/EXEC. Si otro cliente modifica el hash, se reintenta.
func (r *Repository) Run(ctx context.Context, fn func(repo repository.RepositoryPort) error) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			view := &txView{parent: r, tx: tx, staged: make(map[string]*entity.Product), deleted: make(map[string]bool)}
			if err := fn(view); err != nil {
				return err
			}
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				return view.flush(ctx, pipe)
			})
			return err
		}, r.productsKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis: transaction aborted after %d retries", maxTxRetries)
}

type hashReader interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

type hashWriter interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// txView lee a través de la conexión WATCH y acumula escrituras hasta EXEC.
type txView struct {
	parent  *Repository
	tx      *redis.Tx
	staged  map[string]*entity.Product
	order   []string
	deleted map[string]bool
	pending []*entity.Movement
}

func (v *txView) SaveProduct(_ context.Context, p *entity.Product) error {
	if _, ok := v.staged[p.ID]; !ok {
		v.order = append(v.order, p.ID)
	}
	v.staged[p.ID] = p.Clone()
	delete(v.deleted, p.ID)
	return nil
}

func (v *txView) LoadProduct(ctx context.Context, id string) (*entity.Product, error) {
	if v.deleted[id] {
		return nil, nil
	}
	if p, ok := v.staged[id]; ok {
		return p.Clone(), nil
	}
	return loadProduct(ctx, v.tx, v.parent.productsKey(), id)
}

func (v *txView) LoadAllProducts(ctx context.Context) (map[string]*entity.Product, error) {
	out, err := v.parent.LoadAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	for id, p := range v.staged {
		out[id] = p.Clone()
	}
	for id := range v.deleted {
		delete(out, id)
	}
	return out, nil
}

func (v *txView) DeleteProduct(_ context.Context, id string) error {
	v.deleted[id] = true
	return nil
}

func (v *txView) SaveMovement(ctx context.Context, m *entity.Movement) error {
	p, err := v.LoadProduct(ctx, m.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return &domain.ReferenceError{ProductID: m.ProductID}
	}
	v.pending = append(v.pending, m.Clone())
	return nil
}

func (v *txView) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	out, err := v.parent.LoadMovements(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range v.pending {
		out = append(out, m.Clone())
	}
	return out, nil
}

func (v *txView) flush(ctx context.Context, pipe redis.Pipeliner) error {
	for _, id := range v.order {
		payload, err := encodeProduct(v.staged[id])
		if err != nil {
			return err
		}
		pipe.HSet(ctx, v.parent.productsKey(), id, payload)
	}
	for _, m := range v.pending {
		payload, err := encodeMovement(m)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, v.parent.movementsKey(), payload)
	}
	for id := range v.deleted {
		pipe.HDel(ctx, v.parent.productsKey(), id)
	}
	return nil
}

func saveProduct(ctx context.Context, c hashWriter, key string, p *entity.Product) error {
	payload, err := encodeProduct(p)
	if err != nil {
		return err
	}
	if err := c.HSet(ctx, key, p.ID, payload).Err(); err != nil {
		return fmt.Errorf("redis: save product: %w", err)
	}
	return nil
}

func loadProduct(ctx context.Context, c hashReader, key, id string) (*entity.Product, error) {
	raw, err := c.HGet(ctx, key, id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: load product: %w", err)
	}
	return decodeProduct(raw)
}

func encodeProduct(p *entity.Product) (string, error) {
	b, err := json.Marshal(productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SKU:         p.SKU,
		Category:    p.Category,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("redis: encode product: %w", err)
	}
	return string(b), nil
}

func decodeProduct(raw string) (*entity.Product, error) {
	var doc productDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("redis: decode product: %w", err)
	}
	return &entity.Product{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Quantity:    doc.Quantity,
		SKU:         doc.SKU,
		Category:    doc.Category,
		Notes:       doc.Notes,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func encodeMovement(m *entity.Movement) (string, error) {
	b, err := json.Marshal(movementDoc{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		QuantityChange: m.QuantityChange,
		Type:           string(m.Type),
		Reason:         m.Reason,
		Timestamp:      m.Timestamp,
		PerformedBy:    m.PerformedBy,
	})
	if err != nil {
		return "", fmt.Errorf("redis: encode movement: %w", err)
	}
	return string(b), nil
}

// Ping verifica la conexión.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
