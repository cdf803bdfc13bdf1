package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"aoa/internal/models"
	"aoa/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	FeedLimit      = 40
	MaxPromptRunes = 500
	MaxLabelRunes  = 60
)

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	Get(ctx context.Context, id string) (*models.Post, error)
	Recent(ctx context.Context, limit int) ([]models.Post, error)
	Delete(ctx context.Context, id string) error
}

type CreatePostInput struct {
	Prompt     string
	LeftLabel  string
	RightLabel string
	Media      *Upload
}

type PostService struct {
	posts PostRepository
	blobs storage.BlobStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewPostService(posts PostRepository, blobs storage.BlobStore, log *zap.SugaredLogger) *PostService {
	return &PostService{posts: posts, blobs: blobs, log: log, now: time.Now}
}

func (s *PostService) validate(in *CreatePostInput) error {
	in.Prompt = strings.TrimSpace(in.Prompt)
	in.LeftLabel = strings.TrimSpace(in.LeftLabel)
	in.RightLabel = strings.TrimSpace(in.RightLabel)
	if in.LeftLabel == "" {
		in.LeftLabel = models.DefaultLeftLabel
	}
	if in.RightLabel == "" {
		in.RightLabel = models.DefaultRightLabel
	}

	if in.Prompt == "" {
		return invalid("prompt", "Prompt is required.")
	}
	if utf8.RuneCountInString(in.Prompt) > MaxPromptRunes {
		return invalid("prompt", fmt.Sprintf("Prompt must be at most %d characters.", MaxPromptRunes))
	}
	if utf8.RuneCountInString(in.LeftLabel) > MaxLabelRunes || utf8.RuneCountInString(in.RightLabel) > MaxLabelRunes {
		return invalid("labels", fmt.Sprintf("Labels must be at most %d characters.", MaxLabelRunes))
	}
	if in.Media != nil {
		if _, err := storage.ValidateMedia(in.Media.ContentType, in.Media.Size); err != nil {
			var tooLarge *storage.TooLargeError
			if errors.As(err, &tooLarge) {
				return invalid("media", fmt.Sprintf("File too large. Max %dMB.", tooLarge.Limit>>20))
			}
			return invalid("media", "Only images/videos for now.")
		}
	}
	return nil
}

// Create uploads the optional attachment first, then stores the prompt.
func (s *PostService) Create(ctx context.Context, ownerID string, in CreatePostInput) (*models.Post, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &models.Post{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(models.PostLifetime),
		Prompt:     in.Prompt,
		LeftLabel:  in.LeftLabel,
		RightLabel: in.RightLabel,
	}

	if in.Media != nil {
		kind := string(storage.DetectMediaKind(in.Media.ContentType))
		path := storage.ObjectPath(ownerID, now, in.Media.Filename)
		if err := s.blobs.Upload(ctx, path, in.Media.ContentType, in.Media.Body, in.Media.Size, false); err != nil {
			if errors.Is(err, storage.ErrStorageDisabled) {
				return nil, invalid("media", "Media uploads are not available right now.")
			}
			return nil, fmt.Errorf("upload failed: %w", err)
		}
		post.MediaType = &kind
		post.MediaPath = &path
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.log.Infow("post created", "post_id", post.ID, "media", post.MediaType != nil)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	return p, nil
}

// Feed lists the newest prompts. Expired prompts stay listed.
func (s *PostService) Feed(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}
	posts, err := s.posts.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return posts, nil
}

// Delete is a moderation action: the post and everything hanging off it
// goes, and its attachment is removed from the bucket.
func (s *PostService) Delete(ctx context.Context, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if post.MediaPath != nil {
		if err := s.blobs.Delete(ctx, *post.MediaPath); err != nil {
			s.log.Warnw("delete post media", "post_id", id, "path", *post.MediaPath, "error", err)
		}
	}
	s.log.Infow("post deleted", "post_id", id)
	return nil
}
