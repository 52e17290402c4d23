package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unifix/complaint-service/internal/api/http/handlers"
	"github.com/unifix/complaint-service/internal/auth"
	"github.com/unifix/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Complaints        *handlers.ComplaintsHandler
	Users             *handlers.UsersHandler
	Reports           *handlers.ReportsHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Role guards mirror the permission
// table; the services check it again before mutating anything.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	session := cfg.SessionMiddleware.Handle

	complaints := app.Group("/complaints", session, auth.RequireAuthenticated())
	complaints.Post("", auth.RequireRole(domain.RoleStudent), cfg.Complaints.Submit)
	complaints.Get("", cfg.Complaints.List)
	complaints.Get("/pending", auth.RequireRole(domain.RoleWarden, domain.RoleAdmin), cfg.Complaints.PendingQueue)
	complaints.Get("/:id", cfg.Complaints.Detail)
	complaints.Post("/:id/assign", auth.RequireRole(domain.RoleWarden, domain.RoleAdmin), cfg.Complaints.Assign)
	complaints.Post("/:id/resolve", auth.RequireRole(domain.RoleTechnician), cfg.Complaints.Resolve)
	complaints.Post("/:id/priority", auth.RequireRole(domain.RoleWarden, domain.RoleAdmin), cfg.Complaints.SetPriority)

	profile := app.Group("/profile", session, auth.RequireAuthenticated())
	profile.Get("", cfg.Users.GetProfile)
	profile.Put("", cfg.Users.UpdateProfile)

	admin := app.Group("/admin", session, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Add)
	admin.Delete("/users/:id", cfg.Users.Remove)

	reports := app.Group("/reports", session, auth.RequireAuthenticated())
	reports.Get("/statistics", auth.RequireRole(domain.RoleWarden, domain.RoleAdmin), cfg.Reports.Statistics)
	reports.Get("/my-counts", cfg.Reports.MyCounts)
}
