// Package middleware contains HTTP-specific middlewares.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"usersvc/internal/delivery/http/response"
	domainerrors "usersvc/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler, mapping the
// domain error taxonomy onto status codes and {"detail": ...} bodies.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Domain errors carry their own status code and message.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logger.Error("Request failed",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"method", c.Request().Method,
			)
		}

		_ = response.ErrorDetail(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	// Echo's own errors (unknown route, method not allowed, bind failures).
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = response.ErrorDetail(c, httpErr.Code, fmt.Sprintf("%v", httpErr.Message))

		return
	}

	// Store failures and anything unexpected: log and return a generic 500.
	m.logger.Error("Unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	_ = response.ErrorDetail(c, http.StatusInternalServerError, "internal server error")
}
