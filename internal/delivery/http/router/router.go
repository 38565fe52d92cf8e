// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"usersvc/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// userAPIPrefix is where the user CRUD sub-application is mounted on the
// outer surface.
const userAPIPrefix = "/api"

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	GreetingHandler *handler.GreetingHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	greetingHandler *handler.GreetingHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		greetingHandler: params.GreetingHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Outer application greeting routes
	e.GET("/", r.greetingHandler.Root)
	e.GET("/hello/:name", r.greetingHandler.Hello)

	// User CRUD sub-application
	apiGroup := e.Group(userAPIPrefix)
	{
		apiGroup.GET("/users", r.userHandler.ListUsers)
		apiGroup.POST("/users", r.userHandler.CreateUser)
		apiGroup.GET("/users/:id", r.userHandler.GetUser)
		apiGroup.PUT("/users/:id", r.userHandler.UpdateUser)
		apiGroup.DELETE("/users/:id", r.userHandler.DeleteUser)
	}
}
