package store

import (
	"context"

	"aoa/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepo struct {
	db *gorm.DB
}

// Upsert writes the voter's choice; an existing (post, voter) row is overwritten.
func (r *VoteRepo) Upsert(ctx context.Context, v *models.Vote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"choice", "updated_at"}),
	}).Create(v).Error
}

func (r *VoteRepo) ListByPost(ctx context.Context, postID string) ([]models.Vote, error) {
	var out []models.Vote
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Find(&out).Error
	return out, err
}

func (r *VoteRepo) ListByPosts(ctx context.Context, postIDs []string) ([]models.Vote, error) {
	var out []models.Vote
	err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&out).Error
	return out, err
}

func (r *VoteRepo) Find(ctx context.Context, postID, voterID string) (*models.Vote, error) {
	var v models.Vote
	err := r.db.WithContext(ctx).Where("post_id = ? AND voter_id = ?", postID, voterID).First(&v).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}
