package store

import (
	"context"

	"aoa/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo struct {
	db *gorm.DB
}

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepo) Get(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// ListByPost returns the post's comments, newest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at DESC").Find(&out).Error
	return out, err
}

type ReactionRepo struct {
	db *gorm.DB
}

func (r *ReactionRepo) Find(ctx context.Context, commentID, userID string) (*models.CommentReaction, error) {
	var cr models.CommentReaction
	err := r.db.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).First(&cr).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &cr, nil
}

func (r *ReactionRepo) Upsert(ctx context.Context, cr *models.CommentReaction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(cr).Error
}

func (r *ReactionRepo) Delete(ctx context.Context, commentID, userID string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentReaction{}).Error
}

func (r *ReactionRepo) ListByComments(ctx context.Context, commentIDs []string) ([]models.CommentReaction, error) {
	var out []models.CommentReaction
	err := r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Find(&out).Error
	return out, err
}
