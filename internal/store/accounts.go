package store

import (
	"context"
	"strings"
	"time"

	"aoa/internal/models"

	"gorm.io/gorm"
)

type AccountRepo struct {
	db *gorm.DB
}

// CreateWithProfile inserts the account and assigns its anon number in one
// transaction, so an account never exists without a public handle.
func (r *AccountRepo) CreateWithProfile(ctx context.Context, account *models.Account) (*models.Profile, error) {
	profile := &models.Profile{UserID: account.ID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *AccountRepo) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND confirmed_at IS NULL", id).
		Update("confirmed_at", at)
	return res.Error
}
