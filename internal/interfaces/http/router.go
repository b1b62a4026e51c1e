package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Suscripciones-api/internal/application/auth"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceUC    *usecase.ServiceUseCase
	AccountUC    *usecase.AccountUseCase
	AssignmentUC *usecase.AssignmentUseCase
	CustomerUC   *usecase.CustomerUseCase
	StatsUC      *usecase.StatsUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); los borrados además exigen admin.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Services (protegido)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC, deps.AccountUC)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", adminOnly, serviceHandler.Delete)
	services.Get("/:id/next-number", serviceHandler.NextNumber)

	// Accounts (protegido)
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", accountHandler.Update)
	accounts.Delete("/:id", adminOnly, accountHandler.Delete)
	accounts.Get("/:id/profiles", accountHandler.ListProfiles)

	// Profiles (protegido)
	profiles := protected.Group("/profiles")
	profileHandler := NewProfileHandler(deps.AccountUC, deps.AssignmentUC)
	profiles.Post("/reconcile", profileHandler.Reconcile)
	profiles.Get("/:id", profileHandler.Info)
	profiles.Put("/:id", profileHandler.Update)
	profiles.Post("/:id/assign", profileHandler.Assign)
	profiles.Post("/:id/unassign", profileHandler.Unassign)

	// Assignments (protegido)
	assignments := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignments.Put("/:id", assignmentHandler.Update)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Stats y reportes (protegido)
	statsHandler := NewStatsHandler(deps.StatsUC)
	protected.Get("/stats", statsHandler.Aggregate)
	protected.Get("/stats/monthly", statsHandler.Monthly)
	protected.Get("/reports/ledger", statsHandler.LedgerReport)
}
