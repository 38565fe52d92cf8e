package handler

import (
	"fmt"
	"net/http"

	"usersvc/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// GreetingHandler serves the outer application's greeting endpoints.
type GreetingHandler struct{}

// NewGreetingHandler is the constructor for GreetingHandler, injected by Fx.
func NewGreetingHandler() *GreetingHandler {
	return &GreetingHandler{}
}

// Root handles GET /.
func (h *GreetingHandler) Root(c echo.Context) error {
	return response.OK(c, response.Message{Message: "Hello World"})
}

// Hello handles GET /hello/:name.
func (h *GreetingHandler) Hello(c echo.Context) error {
	return response.OK(c, response.Message{Message: fmt.Sprintf("Hello %s", c.Param("name"))})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
