package store

import (
	"context"
	"time"

	"aoa/internal/models"

	"gorm.io/gorm"
)

type AdRepo struct {
	db *gorm.DB
}

func (r *AdRepo) Create(ctx context.Context, ad *models.Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

// SetActive flips the operator kill-switch.
func (r *AdRepo) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Ad{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdRepo) Get(ctx context.Context, id string) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, notFound(err)
	}
	return &ad, nil
}

// ListRecent returns the newest ads first, active or not.
func (r *AdRepo) ListRecent(ctx context.Context, limit int) ([]models.Ad, error) {
	var out []models.Ad
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ListLive returns active ads whose window contains now, by tier and then
// creation order.
func (r *AdRepo) ListLive(ctx context.Context, now time.Time) ([]models.Ad, error) {
	var out []models.Ad
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("tier ASC").Order("created_at ASC").
		Find(&out).Error
	return out, err
}
