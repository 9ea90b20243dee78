package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/inventory"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

// ProductUseCase casos de uso de inventario. La cantidad y el costo solo cambian vía reposición o venta.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ports.TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner ports.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// Create registra un nuevo SKU. El estado se deriva de la cantidad inicial.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.CostPerUnit.IsNegative() || in.ReorderPoint < 0 {
		return nil, fmt.Errorf("%w: cantidad, costo y punto de reorden no pueden ser negativos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(ctx, userID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	reorderPoint := in.ReorderPoint
	if reorderPoint == 0 {
		reorderPoint = entity.DefaultReorderPoint
	}
	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		UserID:       userID,
		SKU:          in.SKU,
		Name:         in.Name,
		Quantity:     in.Quantity,
		CostPerUnit:  in.CostPerUnit,
		Supplier:     strings.TrimSpace(in.Supplier),
		ReorderPoint: reorderPoint,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	product.RefreshStatus()
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, userID string, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, userID, repository.ProductFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update modifica nombre, proveedor y punto de reorden. Los cambios se aplican sobre la fila
// bloqueada para no pisar cantidad ni costo escritos por ventas o reposiciones concurrentes.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var name *string
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		name = &n
	}
	if in.ReorderPoint != nil && *in.ReorderPoint < 0 {
		return nil, fmt.Errorf("%w: reorder_point no puede ser negativo", domain.ErrInvalidInput)
	}

	updated, err := uc.mutateLocked(ctx, userID, id, func(p *entity.Product) (bool, error) {
		if name != nil {
			p.Name = *name
		}
		if in.Supplier != nil {
			p.Supplier = strings.TrimSpace(*in.Supplier)
		}
		if in.ReorderPoint != nil {
			p.ReorderPoint = *in.ReorderPoint
		}
		p.RefreshStatus()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(updated), nil
}

// Restock suma unidades y recalcula el costo promedio ponderado sobre la fila bloqueada,
// así dos reposiciones simultáneas no pierden unidades.
func (uc *ProductUseCase) Restock(ctx context.Context, userID, id string, in dto.RestockRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 || in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: quantity debe ser positiva y unit_cost no negativo", domain.ErrInvalidInput)
	}
	updated, err := uc.mutateLocked(ctx, userID, id, func(p *entity.Product) (bool, error) {
		if p.Status == entity.ProductStatusDiscontinued {
			return false, fmt.Errorf("%w: el producto está descontinuado", domain.ErrConflict)
		}
		p.CostPerUnit = inventory.WeightedAverageCost(p.Quantity, p.CostPerUnit, in.Quantity, in.UnitCost)
		p.Quantity += in.Quantity
		if s := strings.TrimSpace(in.Supplier); s != "" {
			p.Supplier = s
		}
		p.RefreshStatus()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(updated), nil
}

// Discontinue marca el producto como descontinuado. No se borra: las ventas lo referencian por SKU.
func (uc *ProductUseCase) Discontinue(ctx context.Context, userID, id string) error {
	_, err := uc.mutateLocked(ctx, userID, id, func(p *entity.Product) (bool, error) {
		if p.Status == entity.ProductStatusDiscontinued {
			return false, nil
		}
		p.Status = entity.ProductStatusDiscontinued
		return true, nil
	})
	return err
}

// mutateLocked relee el producto con SELECT ... FOR UPDATE dentro de una transacción, aplica fn
// y persiste si fn reporta cambios. La lectura previa por ID solo resuelve el SKU.
func (uc *ProductUseCase) mutateLocked(ctx context.Context, userID, id string, fn func(p *entity.Product) (bool, error)) (*entity.Product, error) {
	current, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	var out *entity.Product
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.CanceledOrderRepository,
	) error {
		p, err := productRepo.LockBySKU(ctx, userID, current.SKU)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		changed, err := fn(p)
		if err != nil {
			return err
		}
		if changed {
			p.UpdatedAt = uc.now()
			if err := productRepo.Update(ctx, p); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Quantity:     p.Quantity,
		CostPerUnit:  p.CostPerUnit,
		StockValue:   p.CostPerUnit.Mul(decimal.NewFromInt(int64(p.Quantity))).Round(2),
		Supplier:     p.Supplier,
		Status:       p.Status,
		ReorderPoint: p.ReorderPoint,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
