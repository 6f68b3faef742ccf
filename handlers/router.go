package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRouter wires the full API surface.
func SetupRouter(app App) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewStructuredLogger(app.Logger()))
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(AuthMiddleware(app))

	r.Route("/api", func(r chi.Router) {
		r.Get("/sites", MakeHandler(app, HandleListSites))
		r.Get("/sites/{siteID}", MakeHandler(app, HandleSiteDetail))
		r.Get("/sites/{siteID}/comments", MakeHandler(app, HandleSiteComments))
		r.Get("/comments", MakeHandler(app, HandleGlobalComments))
		r.Get("/stats", MakeHandler(app, HandleStats))
		r.Get("/categories", MakeHandler(app, HandleCategories))

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)
			r.Post("/sites", MakeHandler(app, HandleProposeSite))
			r.Post("/sites/{siteID}/comments", MakeHandler(app, HandleAddComment))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", MakeHandler(app, HandleRegister))
			r.Post("/login", MakeHandler(app, HandleLogin))
			r.Post("/logout", MakeHandler(app, HandleLogout))
			r.Get("/me", MakeHandler(app, HandleMe))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/overview", MakeHandler(app, HandleAdminOverview))
			r.Post("/sites", MakeHandler(app, HandleAdminAddSite))
			r.Put("/sites/{siteID}", MakeHandler(app, HandleAdminEditSite))
			r.Post("/sites/{siteID}/status", MakeHandler(app, HandleAdminSiteStatus))
			r.Post("/sites/{siteID}/approve", MakeHandler(app, HandleAdminApproveSite))
			r.Post("/sites/{siteID}/reject", MakeHandler(app, HandleAdminRejectSite))
			r.Delete("/sites/{siteID}", MakeHandler(app, HandleAdminDeleteSite))
			r.Post("/comments/{commentID}/approve", MakeHandler(app, HandleAdminApproveComment))
			r.Post("/comments/{commentID}/reject", MakeHandler(app, HandleAdminRejectComment))
			r.Put("/comments/{commentID}", MakeHandler(app, HandleAdminEditComment))
			r.Delete("/comments/{commentID}", MakeHandler(app, HandleAdminDeleteComment))
			r.Post("/backup", MakeHandler(app, HandleAdminBackup))
		})
	})

	return r
}
