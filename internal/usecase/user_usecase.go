// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"usersvc/internal/domain/entity"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a new user.
// The plaintext password lives only for the duration of the request and is
// replaced by its hash before anything reaches the store.
type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput defines a partial update. Nil fields were absent from the
// payload and keep their stored values; non-nil fields are applied.
type UpdateUserInput struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., HTTP handlers) will depend on.
type UserUsecase interface {
	// ListUsers returns every stored user. An empty store is reported as
	// domainerrors.ErrNoUsers rather than an empty slice.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// GetUser returns the user with the given id.
	GetUser(ctx context.Context, id int64) (*entity.User, error)

	// CreateUser hashes the password and persists a new record, returning it
	// with the store-assigned id.
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)

	// UpdateUser applies the supplied fields to an existing record and returns
	// the post-update record.
	UpdateUser(ctx context.Context, id int64, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes the record and returns it as it existed before
	// deletion, for confirmation messaging.
	DeleteUser(ctx context.Context, id int64) (*entity.User, error)
}
