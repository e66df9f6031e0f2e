// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/studio-cms/internal/auth"
	"github.com/olegiv/studio-cms/internal/handler/api"
	"github.com/olegiv/studio-cms/internal/middleware"
)

// requestTimeout bounds every request handled by the router.
const requestTimeout = 30 * time.Second

// routerDeps are the pieces newRouter wires together.
type routerDeps struct {
	Handler         *api.Handler
	Sessions        *scs.SessionManager
	Authenticator   *middleware.Authenticator
	Authorizer      *auth.Authorizer
	LoginProtection *middleware.LoginProtection
	RateLimiter     *middleware.GlobalRateLimiter
	CSRF            middleware.CSRFConfig
	IsDev           bool
}

func newRouter(d routerDeps) http.Handler {
	h := d.Handler
	csrf := middleware.CSRF(d.CSRF)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(d.IsDev)))
	r.Use(middleware.RequestPath)
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware())
	}
	r.Use(d.Sessions.LoadAndSave)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteNotFound(w, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		// Public site content
		r.Get("/hero-slider", h.GetHeroSlider)
		r.Get("/projects", h.ListActiveProjects)
		r.Get("/projects/{slug}", h.GetActiveProject)
		r.Get("/blog/posts", h.ListPublishedPosts)
		r.Get("/blog/posts/{slug}", h.GetPublishedPost)
		r.Get("/blog/categories", h.ListBlogCategories)
		r.Get("/blog/tags", h.ListBlogTags)
		r.Get("/clients", h.ListActiveClients)
		r.Get("/testimonials", h.ListActiveTestimonials)
		r.Get("/settings", h.GetSettings)
		r.Post("/contact", h.SubmitContact)

		r.Route("/auth", func(r chi.Router) {
			r.Use(csrf)
			r.Get("/session", h.Session)
			r.Post("/logout", h.Logout)
			r.Group(func(r chi.Router) {
				if d.LoginProtection != nil {
					r.Use(d.LoginProtection.Middleware())
				}
				r.Post("/login", h.Login)
				r.Post("/token", h.IssueToken)
			})
			r.With(d.Authenticator.RequireUser).Put("/password", h.ChangePassword)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(d.Authenticator.RequireUser)
			r.Use(middleware.Authorize(d.Authorizer))
			r.Use(csrf)

			r.Get("/dashboard", h.DashboardStats)

			r.Route("/blog", func(r chi.Router) {
				r.Get("/posts", h.ListPosts)
				r.Post("/posts", h.CreatePost)
				r.Get("/posts/{id}", h.GetPost)
				r.Put("/posts/{id}", h.UpdatePost)
				r.Delete("/posts/{id}", h.DeletePost)

				r.Get("/categories", h.ListBlogCategories)
				r.Post("/categories", h.CreateBlogCategory)
				r.Put("/categories/{id}", h.UpdateBlogCategory)
				r.Delete("/categories/{id}", h.DeleteBlogCategory)

				r.Get("/tags", h.ListBlogTags)
				r.Post("/tags", h.CreateBlogTag)
				r.Put("/tags/{id}", h.UpdateBlogTag)
				r.Delete("/tags/{id}", h.DeleteBlogTag)
			})

			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Get("/projects/{id}", h.GetProject)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Delete("/projects/{id}", h.DeleteProject)

			r.Get("/categories", h.ListProjectCategories)
			r.Post("/categories", h.CreateProjectCategory)
			r.Patch("/categories/{id}", h.RenameProjectCategory)
			r.Delete("/categories/{id}", h.DeleteProjectCategory)

			r.Get("/clients", h.ListClients)
			r.Post("/clients", h.CreateClient)
			r.Get("/clients/{id}", h.GetClient)
			r.Put("/clients/{id}", h.UpdateClient)
			r.Delete("/clients/{id}", h.DeleteClient)

			r.Get("/testimonials", h.ListTestimonials)
			r.Post("/testimonials", h.CreateTestimonial)
			r.Get("/testimonials/{id}", h.GetTestimonial)
			r.Put("/testimonials/{id}", h.UpdateTestimonial)
			r.Delete("/testimonials/{id}", h.DeleteTestimonial)

			r.Get("/contact-submissions", h.ListContacts)
			r.Get("/contact-submissions/{id}", h.GetContact)
			r.Patch("/contact-submissions/{id}", h.UpdateContactStatus)
			r.Delete("/contact-submissions/{id}", h.DeleteContact)

			// Admin only, enforced by the access policy
			r.Get("/hero-slider", h.ListHeroSliders)
			r.Post("/hero-slider", h.CreateHeroSlider)
			r.Put("/hero-slider", h.ReplaceHeroSlider)
			r.Delete("/hero-slider/{id}", h.DeleteHeroSlider)

			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Get("/users/{id}", h.GetUser)
			r.Put("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)

			r.Put("/settings", h.UpdateSettings)
			r.Get("/events", h.ListEvents)
			r.Post("/maintenance/recount", h.Recount)
			r.Get("/jobs", h.ListJobs)
			r.Post("/jobs/{name}/run", h.RunJob)
		})
	})

	return r
}
