// Package response defines the JSON shapes the HTTP surface exposes.
package response

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"usersvc/internal/domain/entity"
)

// User is the wire representation of a user record. The password hash is
// deliberately absent: it never leaves the service.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Message is the greeting payload of the outer surface.
type Message struct {
	Message string `json:"message"`
}

// Detail is the body used for confirmations and every error response.
type Detail struct {
	Detail string `json:"detail"`
}

// FromUser maps a domain entity to its wire representation.
func FromUser(user *entity.User) User {
	return User{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// FromUsers maps a slice of domain entities to their wire representation.
func FromUsers(users []*entity.User) []User {
	out := make([]User, 0, len(users))
	for _, user := range users {
		out = append(out, FromUser(user))
	}

	return out
}

// OK writes a 200 response with the given payload.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// OKDetail writes a 200 confirmation with a detail message.
func OKDetail(c echo.Context, format string, args ...any) error {
	return c.JSON(http.StatusOK, Detail{Detail: fmt.Sprintf(format, args...)})
}

// ErrorDetail writes an error body with a detail message.
func ErrorDetail(c echo.Context, statusCode int, detail string) error {
	if detail == "" {
		detail = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Detail{Detail: detail})
}
