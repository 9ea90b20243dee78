package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Supplier     string          `json:"supplier"`
	ReorderPoint int             `json:"reorder_point"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad ni costo: se manejan vía reposición).
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Supplier     *string `json:"supplier"`
	ReorderPoint *int    `json:"reorder_point"`
}

// RestockRequest entrada para POST /api/products/:id/restock.
type RestockRequest struct {
	Quantity int             `json:"quantity" validate:"required,min=1"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Supplier string          `json:"supplier"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Status string `query:"status"`
	Search string `query:"q"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	StockValue   decimal.Decimal `json:"stock_value"` // cantidad × costo
	Supplier     string          `json:"supplier"`
	Status       string          `json:"status"`
	ReorderPoint int             `json:"reorder_point"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
