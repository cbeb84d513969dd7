package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/asistencia-pro/internal/application/challenge"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/application/scope"
	"github.com/tu-usuario/asistencia-pro/internal/domain"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// ChallengeHandler sirve los códigos de presencia a la pantalla de una
// ubicación (encargados) y la emisión de QR bajo demanda.
type ChallengeHandler struct {
	display  *challenge.DisplayUseCase
	resolver *scope.Resolver
}

// NewChallengeHandler construye el handler de challenges.
func NewChallengeHandler(display *challenge.DisplayUseCase, resolver *scope.Resolver) *ChallengeHandler {
	return &ChallengeHandler{display: display, resolver: resolver}
}

// Current godoc
// @Summary      Código activo de una ubicación
// @Tags         challenges
// @Produce      json
// @Param        id    path  string  true  "location id"
// @Param        kind  path  string  true  "color | numeric | qr"
// @Success      200  {object}  dto.ChallengeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/challenges/{kind} [get]
func (h *ChallengeHandler) Current(c *fiber.Ctx) error {
	locationID := c.Params("id")
	kind, ok := entity.ParseChallengeKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser color, numeric o qr"})
	}
	if err := h.requireLocationScope(c, locationID); err != nil {
		return err
	}
	ch, err := h.display.Current(c.Context(), locationID, kind)
	if err != nil {
		return challengeError(c, err)
	}
	return c.JSON(toChallengeResponse(ch))
}

// IssueQR godoc
// @Summary      Emitir QR de un solo uso para una ubicación
// @Tags         challenges
// @Produce      json
// @Param        id  path  string  true  "location id"
// @Success      201  {object}  dto.ChallengeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/challenges/qr [post]
func (h *ChallengeHandler) IssueQR(c *fiber.Ctx) error {
	locationID := c.Params("id")
	if err := h.requireLocationScope(c, locationID); err != nil {
		return err
	}
	ch, err := h.display.IssueQR(c.Context(), locationID)
	if err != nil {
		return challengeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toChallengeResponse(ch))
}

// requireLocationScope verifica que el caller pueda actuar sobre la
// ubicación según su scope resuelto. nil si puede; si no, ya respondió.
func (h *ChallengeHandler) requireLocationScope(c *fiber.Ctx, locationID string) error {
	role, ok := entity.ParseRole(GetRole(c))
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol desconocido"})
	}
	sc, err := h.resolver.Resolve(c.Context(), GetUserID(c), role, GetCompanyID(c))
	if err != nil {
		return challengeError(c, err)
	}
	if !sc.Allows(locationID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "ubicación fuera de su alcance"})
	}
	return nil
}

// challengeError mapea la taxonomía de errores del subsistema de códigos a
// HTTP. Un fallo del almacén tras reintentos jamás se reporta como código
// incorrecto: el cliente debe distinguir "reintente" de "código mal".
func challengeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CHALLENGE_NOT_FOUND", Message: "no hay código para esta ubicación"})
	case errors.Is(err, domain.ErrChallengeExpired):
		return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "CHALLENGE_EXPIRED", Message: "el código expiró, intente con el nuevo"})
	case errors.Is(err, domain.ErrCodeMismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CODE_MISMATCH", Message: "código incorrecto, intente de nuevo"})
	case errors.Is(err, domain.ErrAlreadyConsumed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CONSUMED", Message: "este QR ya fue utilizado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "ubicación fuera de su alcance"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "fallo transitorio, intente más tarde"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toChallengeResponse(ch *entity.Challenge) dto.ChallengeResponse {
	return dto.ChallengeResponse{
		ID:         ch.ID,
		LocationID: ch.LocationID,
		Kind:       string(ch.Kind),
		Value:      ch.Value,
		IssuedAt:   ch.IssuedAt,
		ExpiresAt:  ch.ExpiresAt,
		ConsumedBy: ch.ConsumedBy,
		ConsumedAt: ch.ConsumedAt,
	}
}
