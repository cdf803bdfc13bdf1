package store

import (
	"context"

	"aoa/internal/models"

	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func (r *ProfileRepo) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProfileRepo) FindByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error) {
	var out []models.Profile
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&out).Error
	return out, err
}

type AdminRepo struct {
	db *gorm.DB
}

func (r *AdminRepo) Exists(ctx context.Context, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0, err
}
