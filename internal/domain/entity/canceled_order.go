package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Momento de la cancelación respecto al despacho.
const (
	ShippingStatusBefore = "before_shipping"
	ShippingStatusAfter  = "after_shipping"
)

// CanceledOrder registra la cancelación de una venta y la pérdida que genera.
type CanceledOrder struct {
	ID             string
	UserID         string
	SaleID         string
	RefundAmount   decimal.Decimal
	ShippingStatus string
	Loss           decimal.Decimal
	Reason         string
	CanceledAt     time.Time
}
