package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/infrastructure/memory"
)

func newSaleUC(store *memory.Store) *SaleUseCase {
	uc := NewSaleUseCase(store.Sales(), store.Settings(), store)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func seedProduct(t *testing.T, store *memory.Store, sku string, qty int, cost string) *dto.ProductResponse {
	t.Helper()
	p, err := newProductUC(store).Create(context.Background(), testUser, dto.CreateProductRequest{
		SKU: sku, Name: "Producto " + sku, Quantity: qty, CostPerUnit: dec(cost),
	})
	require.NoError(t, err)
	return p
}

func TestSaleUseCase_RecordOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := seedProduct(t, store, "A", 10, "40")
	seedProduct(t, store, "B", 10, "20")
	uc := newSaleUC(store)

	out, err := uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
		OrderNumber:    "O-1",
		SaleDate:       "2025-06-15",
		AdditionalCost: dec("5"),
		Lines: []dto.SaleLineRequest{
			{SKU: "A", Quantity: 1, UnitPrice: dec("100")},
			{SKU: "B", Quantity: 1, UnitPrice: dec("50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "O-1", out.Lines[1].OrderNumber)
	assert.True(t, out.Lines[0].UnitCost.Equal(dec("40")), "el costo se congela al vender")
	// 150 - 12 - 60 - 5 = 73: el costo adicional se cobra una sola vez
	assert.True(t, out.Profit.NetProfit.Equal(dec("73")), "net = %s", out.Profit.NetProfit)
	assert.Equal(t, 1, out.Profit.OrderCount)

	prod, err := store.Products().GetByID(ctx, testUser, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, prod.Quantity)
}

func TestSaleUseCase_StockInsuficienteHaceRollback(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := seedProduct(t, store, "A", 5, "1")
	seedProduct(t, store, "B", 1, "1")
	uc := newSaleUC(store)

	_, err := uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
		Lines: []dto.SaleLineRequest{
			{SKU: "A", Quantity: 2, UnitPrice: dec("10")},
			{SKU: "B", Quantity: 2, UnitPrice: dec("10")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	prod, _ := store.Products().GetByID(ctx, testUser, a.ID)
	assert.Equal(t, 5, prod.Quantity, "la primera línea no debe quedar descontada")

	// SKU repetido en dos líneas se acumula
	_, err = uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
		Lines: []dto.SaleLineRequest{
			{SKU: "A", Quantity: 3, UnitPrice: dec("10")},
			{SKU: "A", Quantity: 3, UnitPrice: dec("10")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
		Lines: []dto.SaleLineRequest{{SKU: "NOPE", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUseCase_Cancel(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := seedProduct(t, store, "A", 10, "40")
	uc := newSaleUC(store)

	order, err := uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
		Lines: []dto.SaleLineRequest{{SKU: "A", Quantity: 2, UnitPrice: dec("100")}},
	})
	require.NoError(t, err)
	saleID := order.Lines[0].ID

	// antes del despacho: reembolso 200 - mercancía recuperada 80 = 120
	out, err := uc.Cancel(ctx, testUser, saleID, dto.CancelSaleRequest{
		RefundAmount:   dec("200"),
		ShippingStatus: entity.ShippingStatusBefore,
		Reason:         "cliente arrepentido",
	})
	require.NoError(t, err)
	assert.True(t, out.Loss.Equal(dec("120")), "loss = %s", out.Loss)
	assert.True(t, out.Restocked)

	prod, _ := store.Products().GetByID(ctx, testUser, a.ID)
	assert.Equal(t, 10, prod.Quantity)

	sale, _ := store.Sales().GetByID(ctx, testUser, saleID)
	assert.Equal(t, entity.SaleStatusCanceled, sale.Status)

	_, err = uc.Cancel(ctx, testUser, saleID, dto.CancelSaleRequest{ShippingStatus: entity.ShippingStatusAfter})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Cancel(ctx, testUser, saleID, dto.CancelSaleRequest{ShippingStatus: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleUseCase_CancelDespuesDelDespacho(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	seedProduct(t, store, "A", 10, "40")
	settings := NewSettingsUseCase(store.Settings())
	ship, label := dec("6"), dec("1.5")
	_, err := settings.Update(ctx, testUser, dto.UpdateSettingsRequest{ShippingBaseCost: &ship, LabelCost: &label})
	require.NoError(t, err)

	uc := newSaleUC(store)
	order, err := uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
		Lines: []dto.SaleLineRequest{{SKU: "A", Quantity: 1, UnitPrice: dec("100")}},
	})
	require.NoError(t, err)

	out, err := uc.Cancel(ctx, testUser, order.Lines[0].ID, dto.CancelSaleRequest{
		RefundAmount:   dec("100"),
		ShippingStatus: entity.ShippingStatusAfter,
	})
	require.NoError(t, err)
	assert.True(t, out.Loss.Equal(dec("107.5")), "loss = %s", out.Loss)
	assert.False(t, out.Restocked)
}

func TestSaleUseCase_List(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	seedProduct(t, store, "A", 10, "1")
	uc := newSaleUC(store)

	for _, d := range []string{"2025-04-01", "2025-06-10", "2025-06-20"} {
		_, err := uc.RecordOrder(ctx, testUser, dto.RecordOrderRequest{
			SaleDate: d,
			Lines:    []dto.SaleLineRequest{{SKU: "A", Quantity: 1, UnitPrice: dec("10")}},
		})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, testUser, dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2, "por defecto los últimos 30 días")

	out, err = uc.List(ctx, testUser, dto.SaleListRequest{DateRangeRequest: dto.DateRangeRequest{StartDate: "2025-01-01"}})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
}
