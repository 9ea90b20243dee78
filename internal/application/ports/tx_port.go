package ports

import (
	"context"

	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		canceledRepo repository.CanceledOrderRepository,
	) error) error
}
