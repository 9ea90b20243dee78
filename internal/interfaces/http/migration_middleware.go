package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// HeaderMigrationToken header con el token en claro para correr migraciones.
const HeaderMigrationToken = "X-Migration-Token"

// RequireMigrationToken compara el header X-Migration-Token contra un hash bcrypt.
// Sin hash configurado el endpoint queda deshabilitado (404), así no se expone por omisión.
func RequireMigrationToken(tokenHash string) fiber.Handler {
	hash := []byte(tokenHash)
	return func(c *fiber.Ctx) error {
		if len(hash) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "migraciones deshabilitadas"})
		}
		token := c.Get(HeaderMigrationToken)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: HeaderMigrationToken + " requerido"})
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "token de migración inválido"})
		}
		return c.Next()
	}
}
