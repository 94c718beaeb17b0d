package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/roster-management/internal/auth"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	"github.com/frahmantamala/roster-management/internal/employee"
	"github.com/frahmantamala/roster-management/internal/roster"
	"github.com/frahmantamala/roster-management/internal/settings"
	"github.com/frahmantamala/roster-management/internal/shift"
	"github.com/frahmantamala/roster-management/internal/team"
	"github.com/frahmantamala/roster-management/internal/transport/middleware"
	"github.com/frahmantamala/roster-management/internal/transport/swagger"
	"github.com/frahmantamala/roster-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth     *auth.Handler
	Team     *team.Handler
	User     *user.Handler
	Settings *settings.Handler
	Employee *employee.Handler
	Shift    *shift.Handler
	Roster   *roster.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Post("/login", h.Auth.Login)

		// everything below requires a live session
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/logout", h.Auth.Logout)
			pr.Get("/validate", h.Auth.Validate)

			pr.Get("/teams", h.Team.List)
			pr.Get("/settings", h.Settings.Get)

			// super admin only
			pr.Group(func(sr chi.Router) {
				sr.Use(h.Auth.RequireRoles(userDatamodel.RoleSuperAdmin))

				sr.Post("/teams", h.Team.Create)
				sr.Put("/teams/{id}", h.Team.Update)
				sr.Delete("/teams/{id}", h.Team.Delete)

				sr.Get("/users", h.User.List)
				sr.Post("/users", h.User.Create)
				sr.Put("/users/{id}", h.User.Update)
				sr.Delete("/users/{id}", h.User.Delete)
				sr.Put("/users/{username}/password", h.User.ResetPassword)

				sr.Put("/settings/{key}", h.Settings.Set)
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.List)
				er.Post("/", h.Employee.Create)
				er.Get("/check/{emp_id}", h.Employee.Check)
				er.Get("/{emp_id}", h.Employee.Get)
				er.Put("/{emp_id}", h.Employee.Update)
				er.Delete("/{emp_id}", h.Employee.Delete)
			})

			pr.Route("/shifts", func(sr chi.Router) {
				sr.Get("/", h.Shift.List)
				sr.Post("/", h.Shift.Create)
				sr.Get("/{id}", h.Shift.Get)
				sr.Put("/{id}", h.Shift.Update)
				sr.Delete("/{id}", h.Shift.Delete)
			})

			pr.Route("/roster", func(rr chi.Router) {
				rr.Get("/", h.Roster.Matrix)
				rr.Post("/", h.Roster.Generate)
				rr.Get("/export", h.Roster.Export)
				rr.Delete("/employee", h.Roster.DeleteEmployeeMonth)
				rr.Get("/{emp_id}/{date}", h.Roster.GetEntry)
				rr.Put("/{emp_id}/{date}", h.Roster.UpdateEntry)
			})

			pr.Get("/stats", h.Roster.Stats)
		})
	})
}
