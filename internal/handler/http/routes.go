package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// compressionLevel is the gzip level used for responses.
const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(compressionLevel))
	router.Use(withGZipRequests)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/verify/resend", h.resendVerification)
			r.Get("/auth/verify/{token}", h.verifyEmail)
			r.Post("/auth/login", h.login)
			r.Post("/auth/password/reset", h.requestPasswordReset)
			r.Post("/auth/password/reset/{token}", h.completePasswordReset)

			r.Get("/posts", h.listPosts)
			r.Get("/posts/{postID}", h.getPost)
			r.Get("/posts/{postID}/comments", h.listComments)
			r.Get("/users/{username}/posts", h.listUserPosts)
			r.Get("/avatars/{name}", h.getAvatar)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/auth/logout", h.logout)
			r.Post("/auth/password/change", h.changePassword)

			r.Post("/posts", h.createPost)
			r.Put("/posts/{postID}", h.updatePost)
			r.Delete("/posts/{postID}", h.deletePost)
			r.Post("/posts/{postID}/like", h.toggleLike)
			r.Post("/posts/{postID}/comments", h.addComment)

			r.Get("/account", h.getAccount)
			r.Put("/account", h.updateAccount)
			r.Post("/account/avatar", h.uploadAvatar)

			r.Get("/notifications", h.listNotifications)
			r.Post("/notifications/{notificationID}/read", h.markNotificationRead)

			r.Get("/events", h.listEvents)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
