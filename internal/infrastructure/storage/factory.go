// Package storage selecciona el backend del RepositoryPort según la configuración.
package storage

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/stockbook/internal/domain/repository"
	"github.com/jhoicas/stockbook/internal/infrastructure/memory"
	"github.com/jhoicas/stockbook/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stockbook/internal/infrastructure/redis"
	"github.com/jhoicas/stockbook/pkg/config"
)

// Backend repositorio, runner transaccional y función de cierre del driver elegido.
type Backend struct {
	Driver string
	Repo   repository.RepositoryPort
	Tx     repository.TxRunner
	Close  func()
}

// New abre el backend configurado en cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		repo := memory.NewRepository(cfg.Warehouse.Name)
		return &Backend{Driver: config.StorageMemory, Repo: repo, Tx: repo, Close: func() {}}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Driver: config.StoragePostgres,
			Repo:   postgres.NewRepository(pool),
			Tx:     postgres.NewTxRunner(pool),
			Close:  pool.Close,
		}, nil

	case config.StorageRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := infraredis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		repo := infraredis.NewRepository(client, cfg.Redis.Prefix)
		return &Backend{
			Driver: config.StorageRedis,
			Repo:   repo,
			Tx:     repo,
			Close:  func() { _ = client.Close() },
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
