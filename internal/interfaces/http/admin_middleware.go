package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// adminChecker es el contrato mínimo que necesita el middleware para verificar el rol.
// Lo implementa *admin.ProfileUseCase.
type adminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin devuelve un middleware Fiber que deja pasar solo a perfiles con is_admin.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay user_id en el contexto.
//   - 403 Forbidden → el perfil no existe o no es administrador.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireAdmin(checker adminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return unauthorized(c)
		}

		ok, err := checker.IsAdmin(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ADMIN_CHECK_FAILED",
				Message: "no se pudo verificar el perfil, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere perfil de administrador",
			})
		}
		return c.Next()
	}
}
