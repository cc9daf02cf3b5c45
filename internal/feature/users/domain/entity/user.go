// Package entity defines the domain entities for the users feature.
package entity

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskflow_backend/internal/feature/users/domain"
)

const (
	// minNameLength is the minimum number of characters for a user name.
	minNameLength = 3
	// maxNameLength is the maximum number of characters for a user name.
	maxNameLength = 30
)

// User represents a registered user of the task manager.
// All fields are unexported so a value that fails validation can never
// enter a field: mutations go through the Set* methods, which either
// commit a valid value or leave the previous state untouched.
//
// Identity and timestamps are supplied from outside the entity: the id
// comes from an IDGenerator and created_at/updated_at from the
// ensure-timestamps step before the first save. The entity stores them
// as opaque strings and does not validate their format.
type User struct {
	id           string
	createdAt    string
	updatedAt    string
	name         string
	email        string
	passwordHash string
}

// New creates a User with the given identity and profile fields.
// Name and email are validated when non-empty; empty fields stay empty
// until assigned later (timestamps in particular are filled by the
// ensure-timestamps step, not here).
func New(id, createdAt, updatedAt, name, email string) (*User, error) {
	u := &User{id: id, createdAt: createdAt, updatedAt: updatedAt}
	if name != "" {
		if err := u.SetName(name); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := u.SetEmail(email); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Restore rehydrates a User from persisted values, including the stored
// password hash. It is intended for store implementations reading rows or
// cache entries back into the domain; the profile fields go through the
// same validators as New.
func Restore(id, createdAt, updatedAt, name, email, passwordHash string) (*User, error) {
	u, err := New(id, createdAt, updatedAt, name, email)
	if err != nil {
		return nil, err
	}
	u.passwordHash = passwordHash
	return u, nil
}

// ID returns the unique identifier for the user.
func (u *User) ID() string { return u.id }

// CreatedAt returns the string-encoded creation timestamp.
func (u *User) CreatedAt() string { return u.createdAt }

// UpdatedAt returns the string-encoded last-update timestamp.
func (u *User) UpdatedAt() string { return u.updatedAt }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// PasswordHash returns the stored bcrypt hash.
// It exists for store implementations persisting the user; the plaintext
// password itself has no read path (see Password).
func (u *User) PasswordHash() string { return u.passwordHash }

// SetName validates and assigns the user's name.
func (u *User) SetName(name string) error {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return domain.NewValidationError("name must be between 3 and 30 characters")
	}
	u.name = name
	return nil
}

// SetEmail validates and assigns the user's email address.
// The rules are checked in order and the first violation wins; uniqueness
// across users is not checked here but at save time by the store.
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.email = email
	return nil
}

// validateEmail checks the email format rules.
func validateEmail(email string) error {
	if strings.Count(email, "@") != 1 {
		return domain.NewValidationError("email must contain exactly one '@' character.")
	}
	if strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return domain.NewValidationError("email cannot start or end with '@'.")
	}
	if strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
		return domain.NewValidationError("email cannot start or end with '.'.")
	}
	if strings.Contains(email, "..") {
		return domain.NewValidationError("email cannot contain consecutive dots ('..').")
	}
	at := strings.Index(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return domain.NewValidationError("email must contain a dot ('.') after the '@'.")
	}
	return nil
}

// SetPassword hashes the given plaintext with bcrypt and stores the hash.
// The plaintext is never retained. Any non-empty input is accepted;
// password strength policy belongs to outer layers.
func (u *User) SetPassword(plain string) error {
	if plain == "" {
		return domain.NewValidationError("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.passwordHash = string(hashed)
	return nil
}

// Password always fails: the password is a write-only attribute.
// Use CheckPassword to verify a candidate instead.
func (u *User) Password() (string, error) {
	return "", domain.NewAccessError("password is a write-only attribute")
}

// CheckPassword reports whether candidate matches the stored password.
// It returns false for any mismatch, including when no password was set.
func (u *User) CheckPassword(candidate string) bool {
	if u.passwordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(candidate)) == nil
}

// EnsureTimestamps fills empty timestamp fields with the given encoded
// time. Already-populated fields are left as they are.
func (u *User) EnsureTimestamps(now string) {
	if u.createdAt == "" {
		u.createdAt = now
	}
	if u.updatedAt == "" {
		u.updatedAt = now
	}
}

// Touch refreshes the last-update timestamp.
func (u *User) Touch(now string) {
	u.updatedAt = now
}

// ToMap returns the serializable view of the user.
// The password hash is deliberately absent.
func (u *User) ToMap() map[string]string {
	return map[string]string{
		"id":         u.id,
		"created_at": u.createdAt,
		"updated_at": u.updatedAt,
		"name":       u.name,
		"email":      u.email,
	}
}

// String returns the debug form "[User] (<id>) <map>".
func (u *User) String() string {
	return fmt.Sprintf("[User] (%s) %v", u.id, u.ToMap())
}

// CloneOptions carries field overrides for Clone.
// Email and Password have no source-copy fallback: a clone that is going
// to be saved must override both, since a copied email would collide with
// the source row's unique index.
type CloneOptions struct {
	Name     string
	Email    string
	Password string
}

// Clone derives a new user from u. The fresh id and timestamp are
// supplied by the caller and are always used; they are never copied from
// the source. Name is copied unless overridden. Overrides go through the
// same field validators as direct assignment; the store is not consulted,
// so an email collision only surfaces when the clone is saved.
func (u *User) Clone(id, now string, opts CloneOptions) (*User, error) {
	clone := &User{id: id, createdAt: now, updatedAt: now}

	name := u.name
	if opts.Name != "" {
		name = opts.Name
	}
	if name != "" {
		if err := clone.SetName(name); err != nil {
			return nil, err
		}
	}
	if opts.Email != "" {
		if err := clone.SetEmail(opts.Email); err != nil {
			return nil, err
		}
	}
	if opts.Password != "" {
		if err := clone.SetPassword(opts.Password); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
