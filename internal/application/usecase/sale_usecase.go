package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/analytics"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

// SaleUseCase registra pedidos y cancelaciones manteniendo el inventario consistente.
type SaleUseCase struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	txRunner     ports.TxRunner
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
	txRunner ports.TxRunner,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
		txRunner:     txRunner,
		now:          time.Now,
	}
}

// RecordOrder registra todas las líneas de un pedido en una transacción: bloquea cada producto,
// valida stock, congela el costo unitario vigente y descuenta unidades.
// Retorna domain.ErrInsufficientStock si alguna línea excede lo disponible (rollback completo).
func (uc *SaleUseCase) RecordOrder(ctx context.Context, userID string, in dto.RecordOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe tener al menos una línea", domain.ErrInvalidInput)
	}
	if in.AdditionalCost.IsNegative() {
		return nil, fmt.Errorf("%w: additional_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.SKU) == "" || l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d: sku y quantity > 0 son requeridos", domain.ErrInvalidInput, i+1)
		}
		if l.UnitPrice.IsNegative() || l.ShippingFee.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: montos negativos", domain.ErrInvalidInput, i+1)
		}
	}

	now := uc.now()
	saleDate := now
	if in.SaleDate != "" {
		d, err := time.ParseInLocation(dto.DateLayout, in.SaleDate, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: sale_date inválido: %s", domain.ErrInvalidInput, in.SaleDate)
		}
		saleDate = d
	}
	orderNumber := strings.TrimSpace(in.OrderNumber)
	if orderNumber == "" {
		orderNumber = "ORD-" + strings.ToUpper(uuid.New().String()[:8])
	}

	sales := make([]*entity.Sale, 0, len(in.Lines))
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.CanceledOrderRepository,
	) error {
		// Un mismo SKU puede repetirse en varias líneas: se acumula sobre la fila ya bloqueada.
		locked := make(map[string]*entity.Product)
		for _, l := range in.Lines {
			sku := strings.TrimSpace(l.SKU)
			p, ok := locked[sku]
			if !ok {
				var err error
				p, err = productRepo.LockBySKU(ctx, userID, sku)
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
				}
				if p.Status == entity.ProductStatusDiscontinued {
					return fmt.Errorf("%w: SKU %s descontinuado", domain.ErrConflict, sku)
				}
				locked[sku] = p
			}
			if p.Quantity < l.Quantity {
				return fmt.Errorf("%w: SKU %s disponible %d, solicitado %d", domain.ErrInsufficientStock, sku, p.Quantity, l.Quantity)
			}
			p.Quantity -= l.Quantity

			sales = append(sales, &entity.Sale{
				ID:             uuid.New().String(),
				UserID:         userID,
				OrderNumber:    orderNumber,
				SKU:            sku,
				ProductName:    p.Name,
				Quantity:       l.Quantity,
				UnitPrice:      l.UnitPrice,
				ShippingFee:    l.ShippingFee,
				UnitCost:       p.CostPerUnit,
				AdditionalCost: in.AdditionalCost,
				SaleDate:       saleDate,
				Status:         entity.SaleStatusCompleted,
				CreatedAt:      now,
			})
		}
		for _, p := range locked {
			p.RefreshStatus()
			p.UpdatedAt = now
			if err := productRepo.Update(ctx, p); err != nil {
				return err
			}
		}
		return saleRepo.CreateBatch(ctx, sales)
	})
	if err != nil {
		return nil, err
	}

	lines := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		lines = append(lines, ToSaleResponse(s))
	}
	return &dto.OrderResponse{
		OrderNumber: orderNumber,
		Lines:       lines,
		Profit:      dto.NewProfitDTO(analytics.ComputeProfit(analytics.LinesFromSales(sales))),
	}, nil
}

// List lista ventas del usuario en el rango pedido (por defecto últimos 30 días).
func (uc *SaleUseCase) List(ctx context.Context, userID string, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	from, to, err := dto.ParsePeriod(in.StartDate, in.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, err := uc.saleRepo.List(ctx, userID, repository.SaleFilter{
		From:   from,
		To:     to,
		Status: in.Status,
		SKU:    in.SKU,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Cancel marca la venta como cancelada y registra la pérdida. Si la cancelación ocurre antes del
// despacho, las unidades vuelven al inventario. Todo en una transacción.
func (uc *SaleUseCase) Cancel(ctx context.Context, userID, saleID string, in dto.CancelSaleRequest) (*dto.CanceledOrderResponse, error) {
	if in.ShippingStatus != entity.ShippingStatusBefore && in.ShippingStatus != entity.ShippingStatusAfter {
		return nil, fmt.Errorf("%w: shipping_status debe ser before_shipping o after_shipping", domain.ErrInvalidInput)
	}
	if in.RefundAmount.IsNegative() {
		return nil, fmt.Errorf("%w: refund_amount no puede ser negativo", domain.ErrInvalidInput)
	}
	settings, err := uc.settingsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cancelar venta: configuración: %w", err)
	}
	if settings == nil {
		settings = entity.DefaultAppSettings(userID)
	}

	now := uc.now()
	var canceled *entity.CanceledOrder
	restocked := false
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		canceledRepo repository.CanceledOrderRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, userID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCanceled {
			return fmt.Errorf("%w: la venta ya fue cancelada", domain.ErrConflict)
		}

		canceled = &entity.CanceledOrder{
			ID:             uuid.New().String(),
			UserID:         userID,
			SaleID:         sale.ID,
			RefundAmount:   in.RefundAmount,
			ShippingStatus: in.ShippingStatus,
			Loss:           analytics.ComputeCancellationLoss(sale, in.ShippingStatus, in.RefundAmount, settings),
			Reason:         strings.TrimSpace(in.Reason),
			CanceledAt:     now,
		}
		if err := canceledRepo.Create(ctx, canceled); err != nil {
			return err
		}
		if err := saleRepo.UpdateStatus(ctx, userID, sale.ID, entity.SaleStatusCanceled); err != nil {
			return err
		}

		if in.ShippingStatus != entity.ShippingStatusBefore {
			return nil
		}
		p, err := productRepo.LockBySKU(ctx, userID, sale.SKU)
		if err != nil {
			return err
		}
		if p == nil {
			// producto eliminado fuera de la app: la cancelación sigue siendo válida
			return nil
		}
		p.Quantity += sale.Quantity
		p.RefreshStatus()
		p.UpdatedAt = now
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		restocked = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CanceledOrderResponse{
		ID:             canceled.ID,
		SaleID:         canceled.SaleID,
		RefundAmount:   canceled.RefundAmount,
		ShippingStatus: canceled.ShippingStatus,
		Loss:           canceled.Loss.Round(2),
		Reason:         canceled.Reason,
		Restocked:      restocked,
		CanceledAt:     canceled.CanceledAt,
	}, nil
}

// ToSaleResponse mapea la entidad a su DTO de salida.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:             s.ID,
		OrderNumber:    s.OrderNumber,
		SKU:            s.SKU,
		ProductName:    s.ProductName,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		ShippingFee:    s.ShippingFee,
		UnitCost:       s.UnitCost,
		AdditionalCost: s.AdditionalCost,
		SaleDate:       s.SaleDate,
		Status:         s.Status,
	}
}
