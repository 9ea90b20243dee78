// Package pdf genera el reporte de utilidad en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas │ Fecha de emisión         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ingreso / comisión / costo / adicionales / neto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Período | Ingreso | Utilidad | Pérdidas | Neto | Ped │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: utilidad neta del rango y margen                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/ports"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewMarotoReportGenerator construye el generador. Los montos se formatean en español
// (separador de miles "." y decimal ",").
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{
		printer: message.NewPrinter(language.Spanish),
		now:     time.Now,
	}
}

// GenerateProfitReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateProfitReport(title string, report *dto.ReportResponse, profit *dto.ProfitDTO) ([]byte, error) {
	if report == nil || profit == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("SellerOps", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRows(profit, report.Total)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(report.Granularity))
	m.AddRows(g.bucketRows(report.Buckets)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(report.Total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(title string, report *dto.ReportResponse) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Del %s al %s", report.Period.StartDate, report.Period.EndDate), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows desglose de utilidad de las ventas completadas. Si hubo cancelaciones agrega la
// conciliación con el ingreso de la tabla por período.
func (g *MarotoReportGenerator) summaryRows(p *dto.ProfitDTO, total dto.ReportTotalsDTO) []core.Row {
	item := func(label string, v decimal.Decimal) core.Row {
		return row.New(6).Add(
			col.New(6).Add(text.New(label, props.Text{Size: 9, Top: 1})),
			col.New(4).Add(text.New(g.money(v), props.Text{Size: 9, Align: align.Right, Top: 1})),
			col.New(2),
		)
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("DESGLOSE DE UTILIDAD", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}))),
		item("Ingreso por ventas", p.Revenue),
		item("Ingreso por envíos", p.ShippingIncome),
		item("Ingreso total", p.TotalRevenue),
		item("Comisión de plataforma (8%)", p.PlatformFee.Neg()),
		item("Costo de mercancía", p.CostOfGoods.Neg()),
		item("Costos adicionales por pedido", p.AdditionalCosts.Neg()),
	}
	rows = append(rows, row.New(8).Add(
		col.New(6).Add(text.New("Utilidad neta", props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Color: colorPrimary})),
		col.New(4).Add(text.New(g.money(p.NetProfit), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(g.percent(p.ProfitMargin), props.Text{Size: 9, Align: align.Right, Top: 2, Color: colorGray})),
	))
	if !total.CanceledRevenue.IsZero() {
		note := props.Text{Size: 8, Top: 1, Color: colorGray}
		rows = append(rows,
			row.New(6).Add(
				col.New(6).Add(text.New("Ingreso de ventas canceladas (en la tabla, no en el desglose)", note)),
				col.New(4).Add(text.New(g.money(total.CanceledRevenue), props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray})),
				col.New(2),
			),
			row.New(6).Add(
				col.New(6).Add(text.New("Ingreso total de la tabla por período", note)),
				col.New(4).Add(text.New(g.money(total.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray})),
				col.New(2),
			),
		)
	}
	return rows
}

func tableHeaderRow(granularity string) core.Row {
	period := "Día"
	if granularity == "monthly" {
		period = "Mes"
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(period, 2, align.Left),
		h("Ingreso", 2, align.Right),
		h("Utilidad", 2, align.Right),
		h("Pérdidas", 2, align.Right),
		h("Neto", 2, align.Right),
		h("Pedidos", 2, align.Center),
	)
}

// bucketRows una fila por día o mes.
func (g *MarotoReportGenerator) bucketRows(buckets []dto.ReportBucketDTO) []core.Row {
	if len(buckets) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New("Sin ventas en el período.", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		})))}
	}
	out := make([]core.Row, 0, len(buckets))
	for _, b := range buckets {
		lossColor := colorGray
		if b.Losses.IsPositive() {
			lossColor = colorLoss
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(b.Key, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(b.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(b.Profit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(b.Losses), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: lossColor})),
			col.New(2).Add(text.New(g.money(b.NetProfit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", b.OrderCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return out
}

func (g *MarotoReportGenerator) totalsRow(t dto.ReportTotalsDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(5),
		col.New(4).Add(
			label("Pérdidas por cancelación:"),
			label("Utilidad neta del período:"),
			label("Margen:"),
		),
		col.New(3).Add(
			value(g.money(t.Losses)),
			value(g.money(t.NetProfit)),
			value(g.percent(t.ProfitMargin)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.InexactFloat64())
}

func (g *MarotoReportGenerator) percent(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f%%", d.InexactFloat64())
}
