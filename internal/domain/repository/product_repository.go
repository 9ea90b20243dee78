package repository

import (
	"context"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Status string // vacío = todos
	Search string // coincidencia parcial en SKU o nombre
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las consultas se filtran por el usuario dueño.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, userID, sku string) (*entity.Product, error)

	// LockBySKU igual que GetBySKU pero bloquea la fila (SELECT ... FOR UPDATE).
	// Solo tiene efecto dentro de una transacción.
	LockBySKU(ctx context.Context, userID, sku string) (*entity.Product, error)

	List(ctx context.Context, userID string, filter ProductFilter) ([]*entity.Product, error)

	// ListAll devuelve todos los productos del usuario, sin paginar (analítica).
	ListAll(ctx context.Context, userID string) ([]*entity.Product, error)

	// Update persiste nombre, proveedor, punto de reorden, estado, cantidad y costo.
	// Reescribe la fila completa: usarlo sobre una fila leída con LockBySKU en la misma transacción.
	Update(ctx context.Context, product *entity.Product) error
}
