package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(m time.Month, dd, hour int) time.Time {
	return time.Date(2025, m, dd, hour, 0, 0, 0, time.UTC)
}

func reportFixture() ([]ProfitLine, []CancellationLoss) {
	lines := []ProfitLine{
		{SaleID: "s1", OrderKey: "O1", SKU: "A", Quantity: 1, UnitPrice: d("100"), UnitCost: d("40"), AdditionalCost: d("5"), SaleDate: at(time.March, 1, 9)},
		{SaleID: "s2", OrderKey: "O1", SKU: "B", Quantity: 1, UnitPrice: d("50"), UnitCost: d("20"), AdditionalCost: d("5"), SaleDate: at(time.March, 2, 1)},
		{SaleID: "s3", OrderKey: "O2", SKU: "A", Quantity: 2, UnitPrice: d("100"), ShippingFee: d("10"), UnitCost: d("40"), SaleDate: at(time.March, 2, 15)},
		{SaleID: "s4", OrderKey: "O3", SKU: "C", Quantity: 3, UnitPrice: d("20"), UnitCost: d("5"), AdditionalCost: d("2"), SaleDate: at(time.April, 10, 8)},
	}
	canceled := []CancellationLoss{{SaleID: "s3", Loss: d("120")}}
	return lines, canceled
}

func TestBuildReport_Diario(t *testing.T) {
	lines, canceled := reportFixture()

	r := BuildReport(lines, canceled, GranularityDaily)

	require.Len(t, r.Buckets, 3)
	assert.Equal(t, "2025-03-01", r.Buckets[0].Key)
	assert.Equal(t, "2025-03-02", r.Buckets[1].Key)
	assert.Equal(t, "2025-04-10", r.Buckets[2].Key)

	// Día 1: 100 - 8 - 40 - 5 (dueño del costo del pedido O1) = 47
	assert.True(t, r.Buckets[0].Profit.Equal(d("47")), "profit = %s", r.Buckets[0].Profit)
	// Día 2: línea s2 (50 - 4 - 20 = 26) + s3 (210 - 16.8 - 80 = 113.2) = 139.2; pérdida 120
	assert.True(t, r.Buckets[1].Profit.Equal(d("139.2")), "profit = %s", r.Buckets[1].Profit)
	assert.True(t, r.Buckets[1].Losses.Equal(d("120")))
	assert.True(t, r.Buckets[1].NetProfit.Equal(d("19.2")))
	assert.Equal(t, 2, r.Buckets[1].OrderCount)

	assert.Equal(t, 3, r.Total.OrderCount)
	assert.Equal(t, 4, r.Total.SalesCount)
	// s3 cancelada: 2 x 100 + 10 de envío
	assert.True(t, r.Buckets[1].CanceledRevenue.Equal(d("210")), "canceled = %s", r.Buckets[1].CanceledRevenue)
	assert.True(t, r.Buckets[0].CanceledRevenue.IsZero())
	assert.True(t, r.Total.CanceledRevenue.Equal(d("210")), "canceled = %s", r.Total.CanceledRevenue)
}

func TestBuildReport_MensualIgualADirecto(t *testing.T) {
	lines, canceled := reportFixture()

	collapsed := BuildReport(lines, canceled, GranularityMonthly)
	direct := bucketize(lines, canceled, func(t time.Time) (string, time.Time) {
		return t.Format(monthLayout), time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	})

	require.Len(t, collapsed.Buckets, len(direct))
	for i := range direct {
		c, m := collapsed.Buckets[i], direct[i]
		assert.Equal(t, m.Key, c.Key)
		assert.True(t, m.Revenue.Equal(c.Revenue), "revenue %s", m.Key)
		assert.True(t, m.Profit.Equal(c.Profit), "profit %s", m.Key)
		assert.True(t, m.Losses.Equal(c.Losses), "losses %s", m.Key)
		assert.True(t, m.NetProfit.Equal(c.NetProfit), "net %s", m.Key)
		assert.Equal(t, m.OrderCount, c.OrderCount, "orders %s", m.Key)
		assert.Equal(t, m.SalesCount, c.SalesCount, "sales %s", m.Key)
		assert.True(t, m.CanceledRevenue.Equal(c.CanceledRevenue), "canceled %s", m.Key)
	}
	assert.True(t, collapsed.Buckets[0].CanceledRevenue.Equal(d("210")))

	// El pedido O1 abarca dos días pero es un único pedido de marzo.
	assert.Equal(t, "2025-03", collapsed.Buckets[0].Key)
	assert.Equal(t, 2, collapsed.Buckets[0].OrderCount)
}

func TestBuildReport_MargenTotal(t *testing.T) {
	r := BuildReport(nil, nil, GranularityMonthly)
	assert.Empty(t, r.Buckets)
	assert.True(t, r.Total.ProfitMargin.IsZero())

	lines := []ProfitLine{{SaleID: "x", OrderKey: "X", Quantity: 1, UnitPrice: d("200"), UnitCost: d("50"), SaleDate: at(time.May, 5, 5)}}
	r = BuildReport(lines, nil, GranularityDaily)
	// 200 - 16 - 50 = 134 → 67%
	assert.True(t, r.Total.ProfitMargin.Equal(d("67")), "margin = %s", r.Total.ProfitMargin)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityDaily, g)

	g, err = ParseGranularity("monthly")
	require.NoError(t, err)
	assert.Equal(t, GranularityMonthly, g)

	_, err = ParseGranularity("weekly")
	assert.Error(t, err)
}
