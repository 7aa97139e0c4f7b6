package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockbook/internal/infrastructure/memory"
	"github.com/jhoicas/stockbook/internal/infrastructure/storage"
	"github.com/jhoicas/stockbook/pkg/config"
)

func TestNew_MemoryPorDefecto(t *testing.T) {
	cfg := &config.Config{Warehouse: config.WarehouseConfig{Name: "Central"}}

	b, err := storage.New(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.StorageMemory, b.Driver)
	_, ok := b.Repo.(*memory.Repository)
	assert.True(t, ok)
	assert.NotNil(t, b.Tx)
}

func TestNew_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}

	_, err := storage.New(context.Background(), cfg)
	assert.Error(t, err)
}
