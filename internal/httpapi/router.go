package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spacebook/internal/api"
	"spacebook/internal/auth"
	"spacebook/internal/booking"
	"spacebook/internal/catalog"
	"spacebook/internal/feed"
	"spacebook/internal/permission"
	"spacebook/internal/user"
	"spacebook/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	catalogRepo := catalog.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)

	authHandlers := auth.Handlers{Cfg: deps.Cfg, Users: usersRepo}
	userHandlers := user.Handlers{DB: deps.DB, Users: usersRepo}
	catalogHandlers := catalog.Handlers{DB: deps.DB, Catalog: catalogRepo}
	bookingHandlers := booking.Handlers{
		DB:               deps.DB,
		Bookings:         bookingsRepo,
		Catalog:          catalogRepo,
		RecheckOnApprove: deps.Cfg.RecheckOnApprove,
	}
	feedHandlers := feed.Handlers{Bookings: bookingsRepo}

	// v1
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandlers.Login)

		// Public browsing. The session is optional: admins browsing with a
		// token can still reach hidden entries by direct identifier.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalSessionAuth(deps.Cfg.Session, usersRepo))

			r.Get("/spaces", catalogHandlers.ListSpaces)
			r.Get("/spaces/{id}", catalogHandlers.GetSpace)
		})

		// Calendar feed, consumed by an external calendar UI.
		r.Group(func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.FeedAllowedOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Authorization"},
				MaxAgeSeconds:  600,
			}))
			r.Use(auth.OptionalSessionAuth(deps.Cfg.Session, usersRepo))

			r.Get("/bookings/feed", feedHandlers.Events)
		})

		// Authenticated user surface.
		r.Group(func(r chi.Router) {
			r.Use(auth.SessionAuth(deps.Cfg.Session, usersRepo))

			r.Get("/auth/me", authHandlers.Me)

			r.With(api.RequireCapability(permission.Book)).
				Post("/resources/{id}/bookings", bookingHandlers.Create)

			r.Group(func(r chi.Router) {
				r.Use(api.RequireCapability(permission.View))

				r.Get("/bookings/mine", bookingHandlers.ListMine)
				r.Post("/bookings/{id}/cancel", bookingHandlers.Cancel)
				r.Post("/bookings/{id}/end-early", bookingHandlers.EndEarly)
			})
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.SessionAuth(deps.Cfg.Session, usersRepo))
			r.Use(api.RequireCapability(permission.Admin))

			r.Get("/bookings", bookingHandlers.AdminList)
			r.Post("/bookings/{id}/review", bookingHandlers.Review)

			r.Get("/spaces", catalogHandlers.AdminListSpaces)
			r.Post("/spaces", catalogHandlers.CreateSpace)
			r.Put("/spaces/{id}", catalogHandlers.UpdateSpace)
			r.Delete("/spaces/{id}", catalogHandlers.DeleteSpace)
			r.Post("/spaces/{id}/toggle", catalogHandlers.ToggleSpace)

			r.Post("/resources", catalogHandlers.CreateResource)
			r.Put("/resources/{id}", catalogHandlers.UpdateResource)
			r.Delete("/resources/{id}", catalogHandlers.DeleteResource)
			r.Post("/resources/{id}/toggle", catalogHandlers.ToggleResource)

			r.Get("/users", userHandlers.List)
			r.Post("/users", userHandlers.Create)
			r.Put("/users/{id}/permissions", userHandlers.UpdateMask)
		})
	})

	return r
}
