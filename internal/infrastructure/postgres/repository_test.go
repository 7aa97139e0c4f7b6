package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository"
	"github.com/jhoicas/stockbook/internal/infrastructure/postgres"
	"github.com/jhoicas/stockbook/pkg/config"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// newTestPool requiere STOCKBOOK_TEST_DATABASE_URL (base de datos desechable).
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("STOCKBOOK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STOCKBOOK_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE products, stock_movements`)
	require.NoError(t, err)
	return pool
}

func sample(t *testing.T, qty int) *entity.Product {
	t.Helper()
	p, err := entity.NewProduct(entity.ProductParams{
		ID: "LAPTOP-001", Name: "Laptop", Price: decimal.RequireFromString("1200.50"), Quantity: qty,
	}, t0)
	require.NoError(t, err)
	return p
}

func TestRepo_Postgres_CicloCompleto(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewRepository(pool)

	require.NoError(t, repo.SaveProduct(ctx, sample(t, 5)))
	require.NoError(t, repo.SaveProduct(ctx, sample(t, 7)))

	got, err := repo.LoadProduct(ctx, "LAPTOP-001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.Quantity)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1200.50")))

	missing, err := repo.LoadProduct(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.SaveMovement(ctx, entity.NewMovement(&entity.Product{ID: "NOPE"}, 1, entity.MovementTypeIN, "", "", t0))
	var ref *domain.ReferenceError
	assert.True(t, errors.As(err, &ref))

	require.NoError(t, repo.SaveMovement(ctx, entity.NewMovement(got, 1, entity.MovementTypeIN, "a", "", t0.Add(time.Hour))))
	require.NoError(t, repo.SaveMovement(ctx, entity.NewMovement(got, -1, entity.MovementTypeOUT, "b", "", t0)))
	require.NoError(t, repo.DeleteProduct(ctx, "LAPTOP-001"))

	ms, err := repo.LoadMovements(ctx)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "a", ms[0].Reason, "orden de inserción, no por timestamp")
}

func TestTxRunner_Postgres_RollbackEnError(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	require.NoError(t, postgres.NewRepository(pool).SaveProduct(ctx, sample(t, 5)))

	runner := postgres.NewTxRunner(pool)
	boom := errors.New("boom")
	err := runner.Run(ctx, func(tx repository.RepositoryPort) error {
		p, err := tx.LoadProduct(ctx, "LAPTOP-001")
		require.NoError(t, err)
		require.NoError(t, p.ChangeQuantity(-5, t0))
		require.NoError(t, tx.SaveProduct(ctx, p))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := postgres.NewRepository(pool).LoadProduct(ctx, "LAPTOP-001")
	assert.Equal(t, 5, got.Quantity)
}
