package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"devconnector/internal/config"
	"devconnector/internal/delivery/http/handler"
	"devconnector/internal/delivery/http/middleware"
	"devconnector/internal/delivery/http/routes"
	"devconnector/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and the HTTP application and starts the
// websocket hub. The returned cleanup stops the hub and releases the
// container.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: c.Config.CORS.AllowOrigins,
		AllowHeaders: []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, middleware.HeaderAuthToken},
	}))
}

func registerRoutes(app *fiber.App, c *Container) {
	checks := map[string]handler.Pinger{"cache": c.Redis}
	if c.DB != nil {
		checks["database"] = c.DB
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		handler.NewAuthHandler(c.Auth),
		handler.NewProfileHandler(c.Profile, c.GitHub),
		handler.NewPostHandler(c.Post),
		ws.NewHandler(c.Hub, c.Config.CORS.AllowOrigins, c.Logger),
		middleware.NewAuthMiddleware(c.JWT),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
