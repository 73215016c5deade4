package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	if h.trustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json"))

	// public routes
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/info", h.getServerInfo)
		r.Get("/api/catalog", h.searchCatalog)
		r.Get("/api/catalog/subjects", h.listSubjects)
	})

	// routes without authorization, throttled per client IP
	router.Group(func(r chi.Router) {
		r.Use(h.withAuthRateLimit)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/bookmarks", h.listBookmarks)
		r.Post("/api/bookmarks", h.createBookmark)
		r.Delete("/api/bookmarks/{bookmarkID}", h.deleteBookmark)
		r.Post("/api/bookmarks/{bookmarkID}/tags/{tagID}", h.attachTag)
		r.Delete("/api/bookmarks/{bookmarkID}/tags/{tagID}", h.detachTag)

		r.Get("/api/tags", h.listTags)
		r.Post("/api/tags", h.createTag)
		r.Delete("/api/tags/{tagID}", h.deleteTag)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
