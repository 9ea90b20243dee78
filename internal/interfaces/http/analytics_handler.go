package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/SellerOps-api/internal/application/analytics"
	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints de utilidad, tendencias e inventario.
type AnalyticsHandler struct {
	uc *appanalytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetProfit godoc
// @Summary      Desglose de utilidad del período
// @Description  Ingreso, comisión de plataforma (8%), costo de mercancía, costos adicionales por
// @Description  pedido y utilidad neta de las ventas completadas.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: hace 30 días."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.ProfitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/profit [get]
func (h *AnalyticsHandler) GetProfit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var req dto.DateRangeRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	out, err := h.uc.Profit(c.UserContext(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Reporte diario o mensual
// @Description  Utilidad por día o mes con las pérdidas por cancelación de cada período.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date   query  string  false  "YYYY-MM-DD"
// @Param        end_date     query  string  false  "YYYY-MM-DD"
// @Param        granularity  query  string  false  "daily|monthly"  default(daily)
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	out, err := h.uc.Report(c.UserContext(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReportPDF godoc
// @Summary      Reporte de utilidad en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date   query  string  false  "YYYY-MM-DD"
// @Param        end_date     query  string  false  "YYYY-MM-DD"
// @Param        granularity  query  string  false  "daily|monthly"  default(daily)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/report.pdf [get]
func (h *AnalyticsHandler) GetReportPDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	pdfBytes, filename, err := h.uc.ReportPDF(c.UserContext(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// GetTrends godoc
// @Summary      Comparación de períodos por SKU
// @Description  Sin fechas compara los últimos 30 días contra los 30 anteriores.
// @Description  Las variaciones con período anterior en cero se devuelven como null.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        current_start   query  string  false  "YYYY-MM-DD"
// @Param        current_end     query  string  false  "YYYY-MM-DD"
// @Param        previous_start  query  string  false  "YYYY-MM-DD"
// @Param        previous_end    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.TrendsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/trends [get]
func (h *AnalyticsHandler) GetTrends(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var req dto.TrendsRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	out, err := h.uc.Trends(c.UserContext(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetInventoryHealth godoc
// @Summary      Salud del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryHealthResponse
// @Router       /api/analytics/inventory-health [get]
func (h *AnalyticsHandler) GetInventoryHealth(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.InventoryHealth(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReorder godoc
// @Summary      Sugerencias de reorden
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReorderResponse
// @Router       /api/analytics/reorder [get]
func (h *AnalyticsHandler) GetReorder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Reorder(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDashboard devuelve los KPIs del día y del mes en curso.
// GET /api/analytics/dashboard
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Dashboard(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
