// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core entity in the system, representing a single account record.
type User struct {
	ID           int64     // Store-assigned identifier, immutable for the record's lifetime.
	Username     string    // The user's display name, required on creation.
	Email        string    // The user's contact email, required on creation.
	PasswordHash string    // Salted one-way hash of the password. Never holds plaintext.
	CreatedAt    time.Time // Timestamp of when this record was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}

// UserChanges describes a partial update to a user record. A nil field means
// "not supplied, keep the stored value"; a non-nil field replaces it. This is
// the explicit unset-vs-set distinction PUT needs.
type UserChanges struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the change set touches no fields at all.
func (c UserChanges) IsEmpty() bool {
	return c.Username == nil && c.Email == nil && c.PasswordHash == nil
}
