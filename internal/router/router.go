package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/mhagyesh07/ITCC-System/internal/config"
	"github.com/mhagyesh07/ITCC-System/internal/handlers"
	"github.com/mhagyesh07/ITCC-System/internal/middleware"
	"github.com/mhagyesh07/ITCC-System/internal/models"
	"github.com/mhagyesh07/ITCC-System/internal/repository"
	"github.com/mhagyesh07/ITCC-System/internal/service"
)

// New assembles the full HTTP surface. Repositories are injected so tests
// can swap in fakes without a database.
func New(log zerolog.Logger, cfg config.Config, users repository.UserRepository, tickets repository.TicketRepository) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	r.Get("/healthz", handlers.Health())

	authSvc := service.NewAuthService(users, cfg.SessionSecret, cfg.TokenTTL)
	ticketSvc := service.NewTicketService(tickets)
	uh := handlers.NewUserHTTP(authSvc, users, log)
	th := handlers.NewTicketHTTP(ticketSvc, cfg.UploadDir, log)

	admin := string(models.RoleAdmin)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", uh.Signup())
		r.Post("/login", uh.Login())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/profile", uh.Profile())

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(admin))
				r.Get("/", uh.List())
				r.Post("/admin/reset-password", uh.ResetPassword())
			})
		})
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", th.Create())
		r.Get("/", th.List())

		r.With(middleware.RequireSelfOrRoles(admin)).
			Get("/employee/{employeeId}", th.ListByEmployee())

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", th.Get())
			r.Put("/close", th.Close())
			r.With(middleware.RequireRoles(admin)).Put("/comment", th.Comment())
		})
	})

	return r
}
