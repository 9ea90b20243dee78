package repository

import (
	"context"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas. Rango de fechas inclusivo.
type SaleFilter struct {
	From   time.Time
	To     time.Time
	Status string // vacío = todos
	SKU    string
	Limit  int // 0 = sin límite
	Offset int
}

// SaleRepository define el puerto de persistencia para las líneas de venta.
type SaleRepository interface {
	CreateBatch(ctx context.Context, sales []*entity.Sale) error
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
	List(ctx context.Context, userID string, filter SaleFilter) ([]*entity.Sale, error)
	UpdateStatus(ctx context.Context, userID, id, status string) error
}

// CanceledOrderRepository define el puerto de persistencia para cancelaciones.
type CanceledOrderRepository interface {
	Create(ctx context.Context, c *entity.CanceledOrder) error

	// ListBySaleDate devuelve las cancelaciones cuya venta original cae en [from, to].
	ListBySaleDate(ctx context.Context, userID string, from, to time.Time) ([]*entity.CanceledOrder, error)
}
