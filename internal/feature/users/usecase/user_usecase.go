// Package usecase implements the user lifecycle business logic.
package usecase

import (
	"context"
	"fmt"

	"taskflow_backend/internal/feature/users/domain/entity"
)

// UserStore abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (adapters).
type UserStore interface {
	// Get retrieves the user with the given id.
	// It returns domain.ErrUserNotFound if no such user is persisted.
	Get(ctx context.Context, id string) (*entity.User, error)

	// Save inserts or updates the user keyed by its id.
	// It returns a domain.ValidationError if another persisted user
	// already holds the same email.
	Save(ctx context.Context, user *entity.User) error

	// Delete removes the user with the given id.
	// Deleting an absent user is not an error.
	Delete(ctx context.Context, id string) error
}

// IDGenerator supplies fresh unique identifiers for new users.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (platform/identity).
type IDGenerator interface {
	// NewID returns a fresh unique identifier.
	NewID() string
}

// Clock supplies the current time in the stored string encoding.
type Clock interface {
	// Now returns the current time as a storage-encoded string.
	Now() string
}

// userUsecase implements the user lifecycle operations.
type userUsecase struct {
	store UserStore
	ids   IDGenerator
	clock Clock
}

// NewUserUsecase creates a new instance of userUsecase.
func NewUserUsecase(store UserStore, ids IDGenerator, clock Clock) *userUsecase {
	return &userUsecase{
		store: store,
		ids:   ids,
		clock: clock,
	}
}

// Register creates a new user with a hashed password and persists it.
// The id is minted here and timestamps are ensured before the save, so
// the returned user is fully populated.
func (uc *userUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	user, err := entity.New(uc.ids.NewID(), "", "", name, email)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	uc.EnsureTimestamps(user)
	if err := uc.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a persisted user by id.
func (uc *userUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile re-validates and applies name/email changes to a
// persisted user. Empty arguments leave the corresponding field as is.
// Saving with the user's own unchanged email is not a conflict.
func (uc *userUsecase) UpdateProfile(ctx context.Context, id, name, email string) (*entity.User, error) {
	user, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		if err := user.SetName(name); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := user.SetEmail(email); err != nil {
			return nil, err
		}
	}
	user.Touch(uc.clock.Now())
	if err := uc.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Clone derives a new user from the persisted source and saves it.
// The clone always receives a fresh id and fresh timestamps; email and
// password must be overridden for the save to pass the unique email
// index, and a duplicate email surfaces here as the store's
// ValidationError.
func (uc *userUsecase) Clone(ctx context.Context, sourceID string, opts entity.CloneOptions) (*entity.User, error) {
	source, err := uc.store.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clone source: %w", err)
	}
	clone, err := source.Clone(uc.ids.NewID(), uc.clock.Now(), opts)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// Delete removes a user from the store.
func (uc *userUsecase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, id)
}

// EnsureTimestamps fills empty created_at/updated_at fields with the
// current clock time. It runs before the first save; already-populated
// fields are kept.
func (uc *userUsecase) EnsureTimestamps(user *entity.User) {
	user.EnsureTimestamps(uc.clock.Now())
}
