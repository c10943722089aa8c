package repository

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return conflictAs(err, &services.Error{Code: services.CodeConflict, Message: "email already exists"})
}

func (r *userRepo) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, services.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFoundAs(err, services.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepo) Exists(ctx context.Context, id uuid.UUID, role models.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&count).Error
	return count > 0, err
}
