package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// AdminHandler panel de administración: perfiles y códigos de invitación.
// Las rutas van detrás de RequireAdmin.
type AdminHandler struct {
	profiles    *admin.ProfileUseCase
	invitations *admin.InvitationUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(profiles *admin.ProfileUseCase, invitations *admin.InvitationUseCase) *AdminHandler {
	return &AdminHandler{profiles: profiles, invitations: invitations}
}

// ListProfiles godoc
// @Summary      Listar perfiles
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ProfileListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/profiles [get]
func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, err := h.profiles.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProfileListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// ListInvitations godoc
// @Summary      Listar códigos de invitación
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.InvitationListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/invitations [get]
func (h *AdminHandler) ListInvitations(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, err := h.invitations.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InvitationListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// CreateInvitation godoc
// @Summary      Crear código de invitación
// @Description  Sin code se genera uno aleatorio. max_uses 0 = ilimitado.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "Datos del código"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/invitations [post]
func (h *AdminHandler) CreateInvitation(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invitations.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	return page
}
