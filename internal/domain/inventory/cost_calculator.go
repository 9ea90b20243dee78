package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una reposición:
//
//	nuevo = ((stockActual * costoActual) + (cantEntrada * costoEntrada)) / (stockActual + cantEntrada)
//
// Con stock actual negativo o nulo se toma solo la entrada.
func WeightedAverageCost(currentQty int, currentCost decimal.Decimal, inQty int, inCost decimal.Decimal) decimal.Decimal {
	if currentQty < 0 {
		currentQty = 0
	}
	total := currentQty + inQty
	if total <= 0 {
		return decimal.Zero
	}
	cur := decimal.NewFromInt(int64(currentQty))
	in := decimal.NewFromInt(int64(inQty))
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(decimal.NewFromInt(int64(total))).Round(4)
}
