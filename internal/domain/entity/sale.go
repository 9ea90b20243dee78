package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCanceled  = "canceled"
)

// Sale es una línea de pedido. Varias líneas comparten OrderNumber cuando forman un mismo pedido;
// AdditionalCost (fulfillment) se cobra una sola vez por pedido aunque se repita en cada línea.
type Sale struct {
	ID             string
	UserID         string
	OrderNumber    string
	SKU            string
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal
	ShippingFee    decimal.Decimal // envío cobrado al comprador
	UnitCost       decimal.Decimal // costo unitario al momento de la venta
	AdditionalCost decimal.Decimal // costo por pedido (fulfillment)
	SaleDate       time.Time
	Status         string
	CreatedAt      time.Time
}

// OrderKey devuelve la clave de agrupación del pedido; sin número de pedido la línea es su propio pedido.
func (s *Sale) OrderKey() string {
	if s.OrderNumber != "" {
		return s.OrderNumber
	}
	return "sale:" + s.ID
}
