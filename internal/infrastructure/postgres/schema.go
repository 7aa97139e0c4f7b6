package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(18,4) NOT NULL CHECK (price >= 0),
	quantity    INTEGER NOT NULL CHECK (quantity >= 0),
	sku         TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	notes       TEXT,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_movements (
	seq             BIGSERIAL PRIMARY KEY,
	id              TEXT NOT NULL UNIQUE,
	product_id      TEXT NOT NULL,
	product_name    TEXT NOT NULL,
	quantity_change INTEGER NOT NULL,
	type            TEXT NOT NULL,
	reason          TEXT NOT NULL DEFAULT '',
	occurred_at     TIMESTAMPTZ NOT NULL,
	performed_by    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS stock_movements_product_idx ON stock_movements (product_id);
`

// EnsureSchema crea las tablas si no existen. stock_movements no tiene FK a
// products: el libro sobrevive a la baja del producto.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
