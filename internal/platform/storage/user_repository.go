package storage

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"brandkit-server-go/internal/platform/errors"
)

// UserRepository persists user accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user; duplicate usernames are a domain error.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New(errors.KindDomain, "user.create", "username already taken")
		}
		return nil, errors.Wrap(errors.KindStorage, "user.create", "failed to create user", err)
	}
	return user, nil
}

// FindByUsername returns nil when no such user exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "user.find_by_username", "failed to find user", err)
	}
	return &user, nil
}

// FindByID returns nil when no such user exists.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "user.find_by_id", "failed to find user", err)
	}
	return &user, nil
}
