package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
	"github.com/jhoicas/SellerOps-api/internal/application/usecase"
)

// AIHandler maneja los endpoints de recomendaciones asistidas por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Suggest godoc
// @Summary      Recomendaciones generales con IA
// @Description  Resume utilidad, salud del inventario y tendencias de los últimos 30 días y pide
// @Description  recomendaciones al LLM. Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AISuggestionRequest  false  "Enfoque opcional"
// @Success      200   {object}  dto.AIRecommendationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/suggestion [post]
func (h *AIHandler) Suggest(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var req dto.AISuggestionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Suggest(c.UserContext(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WorstProductPlan godoc
// @Summary      Plan de mejora del producto menos rentable
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WorstProductPlanDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      408  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ai/worst-product-plan [post]
func (h *AIHandler) WorstProductPlan(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.WorstProductPlan(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Last godoc
// @Summary      Última recomendación por tipo
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "suggestion|worst_product_plan"
// @Success      200   {object}  dto.AIRecommendationDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ai/last/{type} [get]
func (h *AIHandler) Last(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Last(c.UserContext(), userID, c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de recomendaciones
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        type   query  string  false  "suggestion|worst_product_plan"
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200    {object}  dto.AIRecommendationListResponse
// @Router       /api/ai/recommendations [get]
func (h *AIHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), userID, c.Query("type"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkApplied godoc
// @Summary      Marcar recomendación como aplicada
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recomendación"
// @Success      200  {object}  dto.AIRecommendationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ai/recommendations/{id}/apply [post]
func (h *AIHandler) MarkApplied(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.MarkApplied(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
