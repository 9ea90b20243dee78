package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppSettings configuración por usuario.
type AppSettings struct {
	UserID           string
	ShippingBaseCost decimal.Decimal
	LabelCost        decimal.Decimal
	MinProfitMargin  decimal.Decimal // porcentaje, ej. 15 = 15%
	AutoReorder      bool
	UpdatedAt        time.Time
}

// DefaultAppSettings valores usados cuando el usuario aún no guardó su configuración.
func DefaultAppSettings(userID string) *AppSettings {
	return &AppSettings{
		UserID:           userID,
		ShippingBaseCost: decimal.Zero,
		LabelCost:        decimal.Zero,
		MinProfitMargin:  decimal.NewFromInt(10),
		AutoReorder:      false,
	}
}
