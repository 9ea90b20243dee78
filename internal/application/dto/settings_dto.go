package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest entrada para PUT /api/settings. Campos nil no se modifican.
type UpdateSettingsRequest struct {
	ShippingBaseCost *decimal.Decimal `json:"shipping_base_cost"`
	LabelCost        *decimal.Decimal `json:"label_cost"`
	MinProfitMargin  *decimal.Decimal `json:"min_profit_margin"`
	AutoReorder      *bool            `json:"auto_reorder"`
}

// SettingsResponse configuración efectiva del usuario.
type SettingsResponse struct {
	ShippingBaseCost decimal.Decimal `json:"shipping_base_cost"`
	LabelCost        decimal.Decimal `json:"label_cost"`
	MinProfitMargin  decimal.Decimal `json:"min_profit_margin"`
	AutoReorder      bool            `json:"auto_reorder"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"` // nil = valores por defecto
}
