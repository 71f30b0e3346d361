package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/auth"
	"github.com/ayush/gyft/backend/internal/course"
	"github.com/ayush/gyft/backend/internal/middleware"
	"github.com/ayush/gyft/backend/internal/profile"
)

type routerDeps struct {
	log          zerolog.Logger
	origins      []string
	cookieSecure bool
	sessions     middleware.UserResolver
	limiter      *middleware.LoginLimiter
	auth         *auth.Handler
	profile      *profile.Handler
	course       *course.Handler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.LoadSession(d.sessions, d.cookieSecure))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", d.course.Index)
	r.Get("/account", d.auth.Account)
	r.With(d.limiter.Middleware).Post("/login", d.auth.Login)
	r.With(d.limiter.Middleware).Post("/register", d.auth.Register)
	r.Get("/logout", d.auth.Logout)
	r.Post("/logout", d.auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", d.profile.Show)
		r.Post("/profile", d.profile.Update)
		r.Post("/generate_course", d.course.Generate)
		r.Route("/course/{id}", func(r chi.Router) {
			r.Get("/", d.course.View)
			r.Delete("/", d.course.Delete)
			r.Post("/delete", d.course.Delete)
			r.Get("/export", d.course.Export)
		})
	})

	return r
}
