package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"aoa/internal/models"

	"github.com/google/uuid"
)

const (
	MaxReasonRunes   = 200
	ReportsPageLimit = 200
)

type ReportRepository interface {
	Create(ctx context.Context, r *models.Report) error
	List(ctx context.Context, limit int) ([]models.Report, error)
	Delete(ctx context.Context, id string) error
}

type ReportService struct {
	reports  ReportRepository
	posts    PostGetter
	comments CommentGetter
	now      func() time.Time
}

func NewReportService(reports ReportRepository, posts PostGetter, comments CommentGetter) *ReportService {
	return &ReportService{reports: reports, posts: posts, comments: comments, now: time.Now}
}

// Create files a report against a post or a comment.
func (s *ReportService) Create(ctx context.Context, reporterID, itemType, itemID, reason string) (*models.Report, error) {
	if itemType != models.ReportItemPost && itemType != models.ReportItemComment {
		return nil, invalid("item_type", "Only posts and comments can be reported.")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid("reason", "Please give a reason.")
	}
	if utf8.RuneCountInString(reason) > MaxReasonRunes {
		return nil, invalid("reason", fmt.Sprintf("Reason must be at most %d characters.", MaxReasonRunes))
	}
	if !validID(itemID) {
		return nil, ErrNotFound
	}

	report := &models.Report{
		ID:         uuid.NewString(),
		ReporterID: reporterID,
		ItemType:   itemType,
		ItemID:     itemID,
		Reason:     reason,
		CreatedAt:  s.now().UTC(),
	}

	switch itemType {
	case models.ReportItemPost:
		if _, err := s.posts.Get(ctx, itemID); err != nil {
			return nil, fmt.Errorf("load post: %w", err)
		}
		report.PostID = itemID
	case models.ReportItemComment:
		c, err := s.comments.Get(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("load comment: %w", err)
		}
		report.PostID = c.PostID
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reports.List(ctx, ReportsPageLimit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *ReportService) Dismiss(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return fmt.Errorf("dismiss report: %w", err)
	}
	return nil
}
