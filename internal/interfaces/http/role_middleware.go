package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// RequireRole devuelve un middleware Fiber que exige que el rol del token
// satisfaga alguno de los roles permitidos. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalRole).
//
// La decisión pasa por entity.Role.Satisfies: super_admin satisface
// cualquier requerimiento, el resto exige igualdad exacta y un rol
// desconocido nunca pasa (falla cerrado).
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleStr := GetRole(c)
		if roleStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		role, ok := entity.ParseRole(roleStr)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "rol desconocido",
			})
		}
		for _, allowed := range allowedRoles {
			if required, ok := entity.ParseRole(allowed); ok && role.Satisfies(required) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el rol '" + roleStr + "' no tiene acceso a este recurso",
		})
	}
}
