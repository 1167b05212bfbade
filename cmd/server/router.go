package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/forum-api/internal/api"
	apiMiddleware "github.com/phrazzld/forum-api/internal/api/middleware"
	"github.com/phrazzld/forum-api/internal/platform/metrics"
)

// setupRouter configures the application router with all routes and
// middleware. Authentication runs on every API request so the principal
// is available even on public routes; RequireAuthenticated guards only
// the mutating groups.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(metrics.Middleware)

	authHandler := api.NewAuthHandler(app.userStore, app.authenticator, app.hasher, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	topicHandler := api.NewTopicHandler(app.topicService, app.logger)
	replyHandler := api.NewReplyHandler(app.replyService, app.logger)
	courseHandler := api.NewCourseHandler(app.courseService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/topics", topicHandler.ListTopics)
		r.Get("/topics/{id}", topicHandler.GetTopic)
		r.Get("/topics/{id}/replies", replyHandler.ListReplies)
		r.Get("/courses", courseHandler.ListCourses)
		r.Get("/courses/{id}", courseHandler.GetCourse)

		// Endpoints requiring an authenticated principal
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuthenticated)

			r.Post("/topics", topicHandler.CreateTopic)
			r.Put("/topics/{id}", topicHandler.UpdateTopic)
			r.Delete("/topics/{id}", topicHandler.DeleteTopic)

			r.Post("/topics/{id}/replies", replyHandler.CreateReply)
			r.Put("/replies/{id}", replyHandler.UpdateReply)
			r.Delete("/replies/{id}", replyHandler.DeleteReply)
			r.Post("/replies/{id}/solution", replyHandler.MarkSolution)

			r.Post("/courses", courseHandler.CreateCourse)

			r.Put("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
