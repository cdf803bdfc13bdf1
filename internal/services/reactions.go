package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aoa/internal/models"
)

type ReactionRepository interface {
	Find(ctx context.Context, commentID, userID string) (*models.CommentReaction, error)
	Upsert(ctx context.Context, r *models.CommentReaction) error
	Delete(ctx context.Context, commentID, userID string) error
	ListByComments(ctx context.Context, commentIDs []string) ([]models.CommentReaction, error)
}

type CommentGetter interface {
	Get(ctx context.Context, id string) (*models.Comment, error)
}

// ReactionResult is the comment's state after a reaction, from the
// reacting user's point of view. Mine is 0 when the user is neutral.
type ReactionResult struct {
	ReactionCounts
	Score int `json:"score"`
	Mine  int `json:"mine"`
}

type ReactionService struct {
	reactions ReactionRepository
	comments  CommentGetter
	now       func() time.Time
}

func NewReactionService(reactions ReactionRepository, comments CommentGetter) *ReactionService {
	return &ReactionService{reactions: reactions, comments: comments, now: time.Now}
}

// React applies value for the user. Repeating the current value clears the
// reaction; the opposite value replaces it.
func (s *ReactionService) React(ctx context.Context, commentID, userID string, value int) (*ReactionResult, error) {
	if !models.ValidReaction(value) {
		return nil, invalid("value", "Reaction must be +1 or -1.")
	}
	if !validID(commentID) {
		return nil, ErrNotFound
	}
	if _, err := s.comments.Get(ctx, commentID); err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}

	existing, err := s.reactions.Find(ctx, commentID, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load reaction: %w", err)
	}

	mine := value
	if existing != nil && existing.Value == value {
		if err := s.reactions.Delete(ctx, commentID, userID); err != nil {
			return nil, fmt.Errorf("clear reaction: %w", err)
		}
		mine = 0
	} else {
		err := s.reactions.Upsert(ctx, &models.CommentReaction{
			CommentID: commentID,
			UserID:    userID,
			Value:     value,
			UpdatedAt: s.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("save reaction: %w", err)
		}
	}

	rows, err := s.reactions.ListByComments(ctx, []string{commentID})
	if err != nil {
		return nil, fmt.Errorf("load reactions: %w", err)
	}
	counts := CountReactions(rows)[commentID]
	return &ReactionResult{ReactionCounts: counts, Score: counts.Score(), Mine: mine}, nil
}
