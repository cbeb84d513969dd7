package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/asistencia-pro/internal/application/attendance"
	"github.com/tu-usuario/asistencia-pro/internal/application/auth"
	"github.com/tu-usuario/asistencia-pro/internal/application/challenge"
	"github.com/tu-usuario/asistencia-pro/internal/application/scope"
	"github.com/tu-usuario/asistencia-pro/internal/application/usecase"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	LocationUC *usecase.LocationUseCase
	Display    *challenge.DisplayUseCase
	CheckIn    *attendance.CheckInUseCase
	Resolver   *scope.Resolver
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Scope del caller
	scopeHandler := NewScopeHandler(deps.Resolver)
	protected.Get("/me/scope", scopeHandler.MyScope)

	// Locations: lectura para cualquier autenticado; alta/baja para hr_admin
	// (super_admin la satisface vía Satisfies).
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", RequireRole(string(entity.RoleHRAdmin)), locationHandler.Create)
	locations.Delete("/:id", RequireRole(string(entity.RoleHRAdmin)), locationHandler.Deactivate)

	// Challenges: pantalla de la ubicación (encargados y admins).
	challengeHandler := NewChallengeHandler(deps.Display, deps.Resolver)
	locations.Get("/:id/challenges/:kind",
		RequireRole(string(entity.RoleLocManager), string(entity.RoleHRAdmin)),
		challengeHandler.Current)
	locations.Post("/:id/challenges/qr",
		RequireRole(string(entity.RoleLocManager), string(entity.RoleHRAdmin)),
		challengeHandler.IssueQR)

	// Check-in del empleado.
	attendanceHandler := NewAttendanceHandler(deps.CheckIn)
	protected.Post("/attendance/check-in",
		RequireRole(string(entity.RoleEmployee)),
		attendanceHandler.CheckIn)
}
