// Package adapters provides the store implementations for the users feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskflow_backend/internal/feature/users/domain"
	"taskflow_backend/internal/feature/users/domain/entity"
	"taskflow_backend/internal/feature/users/usecase"
)

// userGorm is the GORM implementation of the UserStore interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements usecase.UserStore.
var _ usecase.UserStore = (*userGorm)(nil)

// NewUserGorm creates a new userGorm instance with the given gorm.DB
// connection. Constructor for dependency injection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Get retrieves a user by id.
// It returns domain.ErrUserNotFound if the user does not exist.
func (r *userGorm) Get(ctx context.Context, id string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity()
}

// Save inserts or updates the user keyed by id.
// The email uniqueness check and the write run inside one transaction so
// the check-then-write is serialized against concurrent saves. A
// duplicate email on a different row fails with the uniqueness
// ValidationError; updating a row in place with its own email is not a
// conflict. The unique index on email backstops the check.
func (r *userGorm) Save(ctx context.Context, user *entity.User) error {
	m := UserModelFromEntity(user)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserModel{}).
			Where("email = ? AND id <> ?", m.Email, m.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return emailConflict(m.Email)
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return emailConflict(m.Email)
			}
			return err
		}
		return nil
	})
}

// Delete removes a user by id. Deleting an absent user is a no-op.
func (r *userGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{}).Error
}

// emailConflict builds the uniqueness violation error for an email.
func emailConflict(email string) *domain.ValidationError {
	return domain.NewValidationError(
		fmt.Sprintf("'email' value '%s' already exists. Must provide a unique value.", email))
}
