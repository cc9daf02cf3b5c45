package adapters

import (
	"taskflow_backend/internal/feature/users/domain/entity"
)

// UserModel is the GORM model for the users table.
// Timestamps are stored in their string encoding, matching the entity;
// the store does not interpret them.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:30;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    string `gorm:"size:32;not null"`
	UpdatedAt    string `gorm:"size:32;not null"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
// Persisted rows passed field validation on the way in, so an error here
// means the row was tampered with outside the application.
func (m *UserModel) ToEntity() (*entity.User, error) {
	return entity.Restore(m.ID, m.CreatedAt, m.UpdatedAt, m.Name, m.Email, m.PasswordHash)
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}
