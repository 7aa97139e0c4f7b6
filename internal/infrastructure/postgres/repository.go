package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository"
)

var _ repository.RepositoryPort = (*Repo)(nil)

// Repo implementación de RepositoryPort sobre PostgreSQL (usable con pool o tx).
type Repo struct {
	q Querier
	// forUpdate bloquea la fila del producto al leerla (solo dentro de una tx).
	forUpdate bool
}

// NewRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewRepository(q Querier) *Repo {
	return &Repo{q: q}
}

const productColumns = `id, name, description, price, quantity, sku, category, notes, created_at, updated_at`

// SaveProduct inserta o actualiza el producto (upsert por id).
func (r *Repo) SaveProduct(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price,
			quantity = EXCLUDED.quantity, sku = EXCLUDED.sku, category = EXCLUDED.category,
			notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.SKU, p.Category, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("product", "precio o stock negativo")
		}
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// LoadProduct obtiene un producto por ID; nil, nil si no existe.
func (r *Repo) LoadProduct(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return p, nil
}

// LoadAllProducts lista todos los productos.
func (r *Repo) LoadAllProducts(ctx context.Context) (map[string]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Product)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// DeleteProduct elimina un producto por ID. Los movimientos no se tocan.
func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// SaveMovement inserta el movimiento solo si el producto existe.
func (r *Repo) SaveMovement(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, product_name, quantity_change, type, reason, occurred_at, performed_by)
		SELECT $1::text, $2::text, $3::text, $4::integer, $5::text, $6::text, $7::timestamptz, $8::text
		WHERE EXISTS (SELECT 1 FROM products WHERE id = $2::text)`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.ProductName, m.QuantityChange, string(m.Type), m.Reason, m.Timestamp, m.PerformedBy,
	)
	if err != nil {
		return fmt.Errorf("save movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.ReferenceError{ProductID: m.ProductID}
	}
	return nil
}

// LoadMovements lista el libro en orden de inserción.
func (r *Repo) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, product_name, quantity_change, type, reason, occurred_at, performed_by
		FROM stock_movements ORDER BY seq`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.QuantityChange, &typ,
			&m.Reason, &m.Timestamp, &m.PerformedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.SKU, &p.Category,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
