package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aoa/internal/models"
)

type VoteRepository interface {
	Upsert(ctx context.Context, v *models.Vote) error
	Find(ctx context.Context, postID, voterID string) (*models.Vote, error)
	ListByPost(ctx context.Context, postID string) ([]models.Vote, error)
	ListByPosts(ctx context.Context, postIDs []string) ([]models.Vote, error)
}

type PostGetter interface {
	Get(ctx context.Context, id string) (*models.Post, error)
}

type VoteService struct {
	votes VoteRepository
	posts PostGetter
	now   func() time.Time
}

func NewVoteService(votes VoteRepository, posts PostGetter) *VoteService {
	return &VoteService{votes: votes, posts: posts, now: time.Now}
}

// Cast records the voter's choice, overwriting any earlier one, and returns
// the prompt's tally re-read from the store.
func (s *VoteService) Cast(ctx context.Context, postID, voterID string, choice int) (Tally, error) {
	if !models.ValidChoice(choice) {
		return Tally{}, invalid("choice", "Choice must be 0 or 1.")
	}
	if !validID(postID) {
		return Tally{}, ErrNotFound
	}
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return Tally{}, fmt.Errorf("load post: %w", err)
	}

	vote := &models.Vote{
		PostID:    postID,
		VoterID:   voterID,
		Choice:    choice,
		UpdatedAt: s.now(),
	}
	if err := s.votes.Upsert(ctx, vote); err != nil {
		return Tally{}, fmt.Errorf("save vote: %w", err)
	}
	return s.Tally(ctx, postID)
}

func (s *VoteService) Tally(ctx context.Context, postID string) (Tally, error) {
	votes, err := s.votes.ListByPost(ctx, postID)
	if err != nil {
		return Tally{}, fmt.Errorf("load votes: %w", err)
	}
	return TallyOf(votes), nil
}

// MyChoice returns nil when the voter has not voted on the prompt.
func (s *VoteService) MyChoice(ctx context.Context, postID, voterID string) (*int, error) {
	v, err := s.votes.Find(ctx, postID, voterID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vote: %w", err)
	}
	c := v.Choice
	return &c, nil
}

// ForPosts tallies a page of prompts in one query and picks out the
// viewer's own choices.
func (s *VoteService) ForPosts(ctx context.Context, postIDs []string, voterID string) (map[string]Tally, map[string]int, error) {
	mine := make(map[string]int)
	if len(postIDs) == 0 {
		return map[string]Tally{}, mine, nil
	}

	votes, err := s.votes.ListByPosts(ctx, postIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load votes: %w", err)
	}
	for _, v := range votes {
		if v.VoterID == voterID {
			mine[v.PostID] = v.Choice
		}
	}
	return TallyByPost(postIDs, votes), mine, nil
}
