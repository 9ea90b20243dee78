package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
)

// ComputeCancellationLoss pérdida de cancelar una venta:
//
//	pérdida = reembolso + costos de envío incurridos - costo de mercancía recuperada
//
// Antes del despacho la mercancía vuelve al inventario (se recupera UnitCost × Quantity) y no hay
// envío pagado. Después del despacho se pierden el envío base y la etiqueta. Nunca es negativa.
func ComputeCancellationLoss(sale *entity.Sale, shippingStatus string, refund decimal.Decimal, settings *entity.AppSettings) decimal.Decimal {
	loss := refund
	switch shippingStatus {
	case entity.ShippingStatusAfter:
		if settings != nil {
			loss = loss.Add(settings.ShippingBaseCost).Add(settings.LabelCost)
		}
	default:
		recovered := sale.UnitCost.Mul(decimal.NewFromInt(int64(sale.Quantity)))
		loss = loss.Sub(recovered)
	}
	if loss.IsNegative() {
		return decimal.Zero
	}
	return loss
}
