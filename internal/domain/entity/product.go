package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida de un producto.
const (
	ProductStatusActive       = "active"
	ProductStatusLowStock     = "low_stock"
	ProductStatusOutOfStock   = "out_of_stock"
	ProductStatusDiscontinued = "discontinued"
)

// DefaultReorderPoint umbral de stock bajo cuando el producto no define uno propio.
const DefaultReorderPoint = 5

// Product representa un SKU del inventario de un vendedor.
// Nunca se borra físicamente: las ventas históricas lo referencian por SKU.
type Product struct {
	ID           string
	UserID       string
	SKU          string // único por usuario
	Name         string
	Quantity     int
	CostPerUnit  decimal.Decimal // costo promedio ponderado
	Supplier     string
	Status       string
	ReorderPoint int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductStatusFor deriva el estado a partir de la cantidad disponible.
func ProductStatusFor(quantity, reorderPoint int) string {
	if reorderPoint <= 0 {
		reorderPoint = DefaultReorderPoint
	}
	switch {
	case quantity <= 0:
		return ProductStatusOutOfStock
	case quantity <= reorderPoint:
		return ProductStatusLowStock
	default:
		return ProductStatusActive
	}
}

// RefreshStatus recalcula Status salvo que el producto esté descontinuado.
func (p *Product) RefreshStatus() {
	if p.Status == ProductStatusDiscontinued {
		return
	}
	p.Status = ProductStatusFor(p.Quantity, p.ReorderPoint)
}
