package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/atelierlane/storefront/internal/models"
)

func (r *GormRepo) ProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

func (r *GormRepo) RoleOf(ctx context.Context, userID uuid.UUID) (string, error) {
	var role models.UserRole
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error
	if err != nil {
		return "user", nil
	}
	return role.Role, nil
}

func (r *GormRepo) AdminEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.DB.WithContext(ctx).Model(&models.Profile{}).
		Joins("JOIN user_roles ON user_roles.user_id = profiles.id").
		Where("user_roles.role = ?", "admin").
		Pluck("profiles.email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
