package store

import (
	"context"

	"aoa/internal/models"

	"gorm.io/gorm"
)

type ReportRepo struct {
	db *gorm.DB
}

func (r *ReportRepo) Create(ctx context.Context, rep *models.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]models.Report, error) {
	var out []models.Report
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Report{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
