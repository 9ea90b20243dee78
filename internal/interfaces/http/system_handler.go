package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/system"
)

// SystemHandler endpoints operativos: health, keep-alive y migraciones.
type SystemHandler struct {
	uc      *system.MaintenanceUseCase
	appName string
}

// NewSystemHandler construye el handler.
func NewSystemHandler(uc *system.MaintenanceUseCase, appName string) *SystemHandler {
	return &SystemHandler{uc: uc, appName: appName}
}

// Health responde sin tocar la base; lo usa el balanceador.
// GET /health
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.appName})
}

// KeepAlive godoc
// @Summary      Keep-alive de la base de datos
// @Description  Ejecuta SELECT 1 para que el plan gratuito del proveedor no suspenda la base.
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.KeepAliveResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/keep-alive [post]
func (h *SystemHandler) KeepAlive(c *fiber.Ctx) error {
	out, err := h.uc.Ping(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "DB_UNAVAILABLE", Message: err.Error(),
		})
	}
	return c.JSON(out)
}

// RunMigrations godoc
// @Summary      Aplicar migraciones pendientes
// @Description  Requiere el header X-Migration-Token.
// @Tags         system
// @Produce      json
// @Param        X-Migration-Token  header  string  true  "Token de migración"
// @Success      200  {object}  dto.MigrationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/migrations/run [post]
func (h *SystemHandler) RunMigrations(c *fiber.Ctx) error {
	out, err := h.uc.RunMigrations(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
