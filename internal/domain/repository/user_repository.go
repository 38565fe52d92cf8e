// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"usersvc/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Callers always receive copies of the stored records, never references into
// repository-internal state.
type UserRepository interface {
	// FindAll retrieves every user record in store order. An empty slice is a
	// valid, non-error result.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByID retrieves a single user by primary key.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// Create persists a new user and fills in the store-assigned ID and
	// timestamps on the passed entity.
	Create(ctx context.Context, user *entity.User) error

	// Update applies only the supplied fields to the record with the given id,
	// atomically, and returns the post-update record. Returns ErrUserNotFound
	// when no row matches.
	Update(ctx context.Context, id int64, changes entity.UserChanges) (*entity.User, error)

	// Delete removes the record with the given id and returns it as it existed
	// immediately before deletion. Returns ErrUserNotFound when no row matches.
	Delete(ctx context.Context, id int64) (*entity.User, error)

	// DeleteAll clears the whole table. Reserved for administrative tooling
	// such as the seed command; never reachable from the HTTP surface.
	DeleteAll(ctx context.Context) error
}
