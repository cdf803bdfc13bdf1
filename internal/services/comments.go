package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"aoa/internal/models"
	"aoa/internal/utils"

	"github.com/google/uuid"
)

const MaxCommentRunes = 2000

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	Get(ctx context.Context, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
}

type VoteFinder interface {
	Find(ctx context.Context, postID, voterID string) (*models.Vote, error)
}

type ReactionLister interface {
	ListByComments(ctx context.Context, commentIDs []string) ([]models.CommentReaction, error)
}

type CreateCommentInput struct {
	PostID   string
	AuthorID string
	Side     int
	ParentID string
	Body     string
}

// CommentView is a comment ready for rendering.
type CommentView struct {
	models.Comment
	AuthorLabel string
	BodyHTML    template.HTML
	Counts      ReactionCounts
	Score       int
	Mine        int
	Replies     []CommentView
}

// Thread is a prompt's discussion, one column per side.
type Thread struct {
	Left  []CommentView
	Right []CommentView
	Count int
}

type CommentService struct {
	comments  CommentRepository
	posts     PostGetter
	votes     VoteFinder
	reactions ReactionLister
	identity  *IdentityService
	now       func() time.Time
}

func NewCommentService(comments CommentRepository, posts PostGetter, votes VoteFinder, reactions ReactionLister, identity *IdentityService) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		votes:     votes,
		reactions: reactions,
		identity:  identity,
		now:       time.Now,
	}
}

// Create stores a comment on the side its author currently votes for.
// Replies go one level deep and stay on their parent's side.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, invalid("body", "Comment cannot be empty.")
	}
	if utf8.RuneCountInString(body) > MaxCommentRunes {
		return nil, invalid("body", fmt.Sprintf("Comment must be at most %d characters.", MaxCommentRunes))
	}
	if !models.ValidChoice(in.Side) {
		return nil, invalid("side", "Side must be 0 or 1.")
	}
	if !validID(in.PostID) {
		return nil, ErrNotFound
	}

	if _, err := s.posts.Get(ctx, in.PostID); err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}

	vote, err := s.votes.Find(ctx, in.PostID, in.AuthorID)
	if errors.Is(err, ErrNotFound) {
		return nil, invalid("side", "Vote before joining the discussion.")
	}
	if err != nil {
		return nil, fmt.Errorf("load vote: %w", err)
	}
	if vote.Choice != in.Side {
		return nil, invalid("side", "You can only comment on the side you voted for.")
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    in.PostID,
		AuthorID:  in.AuthorID,
		Side:      in.Side,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}

	if in.ParentID != "" {
		if !validID(in.ParentID) {
			return nil, invalid("parent", "Reply target not found.")
		}
		parent, err := s.comments.Get(ctx, in.ParentID)
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("parent", "Reply target not found.")
		}
		if err != nil {
			return nil, fmt.Errorf("load parent: %w", err)
		}
		switch {
		case parent.PostID != in.PostID:
			return nil, invalid("parent", "Reply target belongs to another post.")
		case parent.ParentID != nil:
			return nil, invalid("parent", "Replies cannot be nested further.")
		case parent.Side != in.Side:
			return nil, invalid("parent", "You can only reply on your own side.")
		}
		comment.ParentID = &parent.ID
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Thread loads a prompt's comments with reactions and author labels.
// Top-level comments come newest first, replies in the order they were made.
func (s *CommentService) Thread(ctx context.Context, postID, viewerID string) (*Thread, error) {
	list, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	thread := &Thread{Count: len(list)}
	if len(list) == 0 {
		return thread, nil
	}

	ids := make([]string, 0, len(list))
	authors := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
		authors = append(authors, c.AuthorID)
	}

	rows, err := s.reactions.ListByComments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load reactions: %w", err)
	}
	counts := CountReactions(rows)
	mine := make(map[string]int)
	for _, r := range rows {
		if r.UserID == viewerID {
			mine[r.CommentID] = r.Value
		}
	}

	labels, err := s.identity.AnonNumbers(ctx, authors)
	if err != nil {
		return nil, err
	}

	view := func(c models.Comment) CommentView {
		cnt := counts[c.ID]
		return CommentView{
			Comment:     c,
			AuthorLabel: LabelFor(labels, c.AuthorID),
			BodyHTML:    utils.RenderMarkdown(c.Body),
			Counts:      cnt,
			Score:       cnt.Score(),
			Mine:        mine[c.ID],
		}
	}

	replies := make(map[string][]CommentView)
	for i := len(list) - 1; i >= 0; i-- {
		c := list[i]
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], view(c))
		}
	}

	for _, c := range list {
		if c.ParentID != nil {
			continue
		}
		v := view(c)
		v.Replies = replies[c.ID]
		if c.Side == models.ChoiceRight {
			thread.Right = append(thread.Right, v)
		} else {
			thread.Left = append(thread.Left, v)
		}
	}
	return thread, nil
}
