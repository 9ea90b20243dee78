package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

func TestRun_RollbackRestauraEstado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", UserID: "u", SKU: "A", Quantity: 5, CostPerUnit: decimal.NewFromInt(2)}))

	boom := errors.New("boom")
	err := s.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository, _ repository.CanceledOrderRepository) error {
		p, err := products.LockBySKU(ctx, "u", "A")
		require.NoError(t, err)
		p.Quantity = 0
		require.NoError(t, products.Update(ctx, p))
		require.NoError(t, sales.CreateBatch(ctx, []*entity.Sale{{ID: "s1", UserID: "u", SKU: "A", Quantity: 5}}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetBySKU(ctx, "u", "A")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	sale, err := s.Sales().GetByID(ctx, "u", "s1")
	require.NoError(t, err)
	assert.Nil(t, sale)
}

func TestProductRepo_UnicidadPorUsuario(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", UserID: "u1", SKU: "A"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", UserID: "u2", SKU: "A"}))
	assert.ErrorIs(t, s.Products().Create(ctx, &entity.Product{ID: "p3", UserID: "u1", SKU: "A"}), domain.ErrDuplicate)

	// el usuario u2 no ve productos de u1
	p, err := s.Products().GetByID(ctx, "u2", "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCanceledOrderRepo_UnaCancelacionPorVenta(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.CanceledOrders()

	require.NoError(t, repo.Create(ctx, &entity.CanceledOrder{ID: "c1", UserID: "u", SaleID: "s1"}))
	err := repo.Create(ctx, &entity.CanceledOrder{ID: "c2", UserID: "u", SaleID: "s1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.NoError(t, repo.Create(ctx, &entity.CanceledOrder{ID: "c3", UserID: "u", SaleID: "s2"}))
}

func TestProductRepo_CopiaAlLeer(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", UserID: "u", SKU: "A", Quantity: 1}))

	p, _ := s.Products().GetByID(ctx, "u", "p1")
	p.Quantity = 99

	again, _ := s.Products().GetByID(ctx, "u", "p1")
	assert.Equal(t, 1, again.Quantity)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(items, 0, 0))
	assert.Empty(t, paginate(items, 2, 10))
}
