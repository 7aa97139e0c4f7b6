package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/stockbook/internal/domain/entity"
	"github.com/jhoicas/stockbook/internal/domain/repository"
)

var _ repository.RepositoryPort = (*MockRepository)(nil)

// MockRepository RepositoryPort basado en testify/mock.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveProduct(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) LoadProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product).Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) LoadAllProducts(ctx context.Context) (map[string]*entity.Product, error) {
	args := m.Called(ctx)
	if ps := args.Get(0); ps != nil {
		return ps.(map[string]*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SaveMovement(ctx context.Context, movement *entity.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockRepository) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	args := m.Called(ctx)
	if ms := args.Get(0); ms != nil {
		return ms.([]*entity.Movement), args.Error(1)
	}
	return nil, args.Error(1)
}
