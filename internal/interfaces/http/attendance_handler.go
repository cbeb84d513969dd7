package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/asistencia-pro/internal/application/attendance"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// AttendanceHandler maneja el check-in por código de presencia.
type AttendanceHandler struct {
	uc *attendance.CheckInUseCase
}

// NewAttendanceHandler construye el handler de asistencia.
func NewAttendanceHandler(uc *attendance.CheckInUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// CheckIn godoc
// @Summary      Registrar asistencia con un código de presencia
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckInRequest  true  "location_id, kind, value"
// @Success      201  {object}  dto.CheckInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LocationID == "" || in.Kind == "" || in.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id, kind y value son requeridos"})
	}
	role, ok := entity.ParseRole(GetRole(c))
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol desconocido"})
	}
	out, err := h.uc.CheckIn(c.Context(), GetUserID(c), role, GetCompanyID(c), in)
	if err != nil {
		return challengeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
