package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/clinic-service/internal/api/http/handlers"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Accounts        *handlers.AccountsHandler
	Patients        *handlers.PatientsHandler
	Doctors         *handlers.DoctorsHandler
	Appointments    *handlers.AppointmentsHandler
	Billing         *handlers.BillingHandler
	Prescriptions   *handlers.PrescriptionsHandler
	Records         *handlers.RecordsHandler
	Notifications   *handlers.NotificationsHandler
	FitSync         *handlers.FitSyncHandler
	AuthMiddleware  *auth.Middleware
	MetricsGatherer prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsGatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	accounts := app.Group("/accounts", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	accounts.Post("", cfg.Accounts.Create)
	accounts.Get("", cfg.Accounts.List)
	accounts.Get("/:id", cfg.Accounts.Get)
	accounts.Patch("/:id/active", cfg.Accounts.SetActive)

	// Patient self-service.
	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePatient))
	me.Get("/profile", cfg.Patients.GetOwn)
	me.Patch("/profile", cfg.Patients.UpdateOwn)
	me.Get("/records", cfg.Records.ListOwn)
	me.Get("/invoices", cfg.Billing.ListOwn)

	patients := app.Group("/patients", cfg.AuthMiddleware.Handle)
	patients.Get("", auth.RequireAdmin(), cfg.Patients.List)
	patients.Get("/:id", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleStaff, domain.RoleDoctor), cfg.Patients.Get)
	patients.Patch("/:id", auth.RequireAdmin(), cfg.Patients.Update)
	patients.Get("/:id/appointments", auth.RequireAdmin(), cfg.Appointments.ListForPatient)
	patients.Get("/:id/invoices", auth.RequireAdmin(), cfg.Billing.ListForPatient)
	patients.Get("/:id/prescriptions", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleStaff, domain.RoleDoctor), cfg.Prescriptions.ListForPatient)
	patients.Get("/:id/records", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleStaff, domain.RoleDoctor), cfg.Records.ListForPatient)

	doctors := app.Group("/doctors", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	doctors.Get("", cfg.Doctors.List)
	doctors.Get("/:id", cfg.Doctors.Get)
	doctors.Get("/:id/availability", cfg.Doctors.GetAvailability)
	doctors.Get("/:id/slots", cfg.Doctors.Slots)
	doctors.Patch("/:id", auth.RequireAdmin(), cfg.Doctors.Update)
	doctors.Put("/:id/availability", auth.RequireAdmin(), cfg.Doctors.SetAvailability)
	doctors.Get("/:id/appointments", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleStaff, domain.RoleDoctor), cfg.Appointments.ListForDoctor)
	doctors.Put("/availability", auth.RequireRole(domain.RoleDoctor), cfg.Doctors.SetOwnAvailability)

	appointments := app.Group("/appointments", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	appointments.Post("", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleStaff, domain.RolePatient), cfg.Appointments.Book)
	appointments.Get("", cfg.Appointments.ListOwn)
	appointments.Get("/:id", cfg.Appointments.Get)
	appointments.Post("/:id/cancel", cfg.Appointments.Cancel)
	appointments.Post("/:id/complete", auth.RequireRole(domain.RoleDoctor), cfg.Appointments.Complete)

	invoices := app.Group("/invoices", cfg.AuthMiddleware.Handle)
	invoices.Post("", auth.RequireAdmin(), cfg.Billing.Create)
	invoices.Get("/:id", auth.RequireAuthenticated(), cfg.Billing.Get)
	invoices.Post("/:id/pay", auth.RequireAdmin(), cfg.Billing.MarkPaid)
	invoices.Post("/:id/void", auth.RequireAdmin(), cfg.Billing.Void)

	prescriptions := app.Group("/prescriptions", cfg.AuthMiddleware.Handle)
	prescriptions.Post("", auth.RequireRole(domain.RoleDoctor), cfg.Prescriptions.Create)
	prescriptions.Get("", auth.RequireRole(domain.RoleDoctor, domain.RolePatient), cfg.Prescriptions.ListOwn)
	prescriptions.Get("/:id", auth.RequireAuthenticated(), cfg.Prescriptions.Get)

	records := app.Group("/records", cfg.AuthMiddleware.Handle)
	records.Post("", auth.RequireRole(domain.RoleDoctor), cfg.Records.Create)
	records.Get("/:id", auth.RequireAuthenticated(), cfg.Records.Get)
	records.Patch("/:id", auth.RequireRole(domain.RoleDoctor), cfg.Records.Update)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	notifications.Get("", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	fit := app.Group("/fit", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RolePatient))
	fit.Post("/sync", cfg.FitSync.Sync)
	fit.Get("/samples", cfg.FitSync.ListSamples)
}
