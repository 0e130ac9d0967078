package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blogportal-dev/blogportal/internal/handler"
	mw "github.com/blogportal-dev/blogportal/internal/middleware"
	"github.com/blogportal-dev/blogportal/internal/middleware/metrics"
	"github.com/blogportal-dev/blogportal/internal/setup"
)

func SetupRouter(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.Logging)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowCredentials: false,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/favicon.ico", handler.FaviconHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Public pages. OptionalAuth only fills the navbar state.
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.OptionalAuth())
		r.Get("/", deps.Handler.HomeGetHandler)
		r.Get("/auth", deps.Handler.AuthGetHandler)
		r.Post("/auth/login", deps.Handler.LoginPostHandler)
		r.Post("/auth/signup", deps.Handler.SignupPostHandler)
		r.Post("/logout", deps.Handler.LogoutHandler)
		r.Get("/posts/{id}", deps.Handler.PostGetHandler)
	})

	// Pages behind a session.
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.RequireAuth())
		r.Get("/dashboard", deps.Handler.DashboardGetHandler)
		r.Get("/create", deps.Handler.CreateGetHandler)
		r.Post("/create", deps.Handler.CreatePostHandler)
		r.Get("/posts/{id}/edit", deps.Handler.EditGetHandler)
		r.Post("/posts/{id}/edit", deps.Handler.EditPostHandler)
		r.Post("/posts/{id}/delete", deps.Handler.PostDeleteHandler)
		r.Post("/posts/{id}/comments", deps.Handler.CommentPostHandler)
		r.Post("/comments/{id}/delete", deps.Handler.CommentDeleteHandler)
		r.Get("/profile", deps.Handler.ProfileGetHandler)
		r.Post("/profile/update", deps.Handler.ProfileUpdateHandler)
		r.Post("/profile/password", deps.Handler.PasswordChangeHandler)
		r.Post("/profile/delete", deps.Handler.AccountDeleteHandler)
		r.Get("/directory", deps.Handler.DirectoryGetHandler)
	})

	// Admin actions.
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.AdminOnly())
		r.Post("/directory/{id}/promote", deps.Handler.PromoteUserHandler)
	})

	return r
}
