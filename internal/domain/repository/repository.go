package repository

import (
	"context"

	"github.com/jhoicas/stockbook/internal/domain/entity"
)

// RepositoryPort define el puerto de persistencia para productos y movimientos (DIP).
// Las lecturas devuelven copias: mutar el resultado no altera el estado almacenado.
type RepositoryPort interface {
	// SaveProduct inserta o reemplaza el producto.
	SaveProduct(ctx context.Context, product *entity.Product) error
	// LoadProduct devuelve nil, nil si el producto no existe.
	LoadProduct(ctx context.Context, id string) (*entity.Product, error)
	LoadAllProducts(ctx context.Context) (map[string]*entity.Product, error)
	// DeleteProduct no falla si el producto no existe.
	DeleteProduct(ctx context.Context, id string) error
	// SaveMovement agrega al libro; ReferenceError si el producto no está registrado.
	SaveMovement(ctx context.Context, movement *entity.Movement) error
	// LoadMovements en orden de inserción.
	LoadMovements(ctx context.Context) ([]*entity.Movement, error)
}

// TxRunner ejecuta fn de forma atómica con un repositorio atado a la transacción.
// Garantiza que load → mutate → save → append no deje estado parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo RepositoryPort) error) error
}
