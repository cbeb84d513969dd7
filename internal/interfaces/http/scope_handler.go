package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/application/scope"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// ScopeHandler expone el scope de ubicaciones de la sesión autenticada.
type ScopeHandler struct {
	resolver *scope.Resolver
}

// NewScopeHandler construye el handler de scope.
func NewScopeHandler(resolver *scope.Resolver) *ScopeHandler {
	return &ScopeHandler{resolver: resolver}
}

// MyScope godoc
// @Summary      Ubicaciones sobre las que puede actuar el caller
// @Tags         scope
// @Produce      json
// @Success      200  {object}  dto.ScopeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/me/scope [get]
func (h *ScopeHandler) MyScope(c *fiber.Ctx) error {
	role, ok := entity.ParseRole(GetRole(c))
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol desconocido"})
	}
	sc, err := h.resolver.Resolve(c.Context(), GetUserID(c), role, GetCompanyID(c))
	if err != nil {
		return challengeError(c, err)
	}
	return c.JSON(dto.ScopeResponse{
		Role:      string(sc.Role),
		Unscoped:  sc.Unscoped,
		Locations: sc.Locations,
		Primary:   sc.Primary(),
	})
}
