package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// InvitationHandler validación y consumo de códigos de invitación.
type InvitationHandler struct {
	uc *admin.InvitationUseCase
}

// NewInvitationHandler construye el handler.
func NewInvitationHandler(uc *admin.InvitationUseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// Validate godoc
// @Summary      Validar código de invitación
// @Description  Público. Responde 200 con valid=false y el motivo cuando el código no sirve.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateInvitationRequest  true  "Código"
// @Success      200   {object}  dto.ValidateInvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invitations/validate [post]
func (h *InvitationHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Validate(c.UserContext(), in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Use godoc
// @Summary      Consumir código de invitación
// @Description  Se llama tras el registro; incrementa el contador de usos de forma atómica.
// @Tags         invitations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateInvitationRequest  true  "Código"
// @Success      200   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invitations/use [post]
func (h *InvitationHandler) Use(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ValidateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Use(c.UserContext(), userID, in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
