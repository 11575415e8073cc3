package routes

import (
	"devconnector/internal/delivery/http/handler"
	"devconnector/internal/delivery/http/middleware"
	"devconnector/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	profile *handler.ProfileHandler
	post    *handler.PostHandler
	ws      *ws.Handler
	authMw  *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	profile *handler.ProfileHandler,
	post *handler.PostHandler,
	wsHandler *ws.Handler,
	authMw *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:  health,
		auth:    auth,
		profile: profile,
		post:    post,
		ws:      wsHandler,
		authMw:  authMw,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app.Group("/api"))

	if r.ws != nil {
		app.Get("/ws/posts", r.ws.HandlePostsWS)
	}
}

func (r *Registry) registerAPI(api fiber.Router) {
	guard := r.authMw.Middleware()

	r.auth.RegisterRoutes(api.Group("/users"), api.Group("/auth"), guard)
	r.profile.RegisterRoutes(api.Group("/profile"), guard)
	r.post.RegisterRoutes(api.Group("/posts", guard))
}
