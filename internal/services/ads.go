package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"aoa/internal/models"
	"aoa/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RailLimit caps how many ads one side rail shows.
	RailLimit = 6
	// FeedSponsoredAfter is the number of organic items that must precede
	// the sponsored unit in the feed.
	FeedSponsoredAfter = 3
	// AdminAdsLimit caps the admin listing.
	AdminAdsLimit = 100
)

// SelectAds returns the ads eligible for placement at now, by ascending
// tier with ties kept in catalog order. limit <= 0 disables truncation.
func SelectAds(now time.Time, placement models.Placement, catalog []models.Ad, limit int) []models.Ad {
	out := make([]models.Ad, 0, len(catalog))
	for _, ad := range catalog {
		if ad.Placement != placement || !ad.IsActive || !ad.InWindow(now) {
			continue
		}
		out = append(out, ad)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tier < out[j].Tier
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AdCard is an ad ready for rendering.
type AdCard struct {
	Ad       models.Ad
	MediaURL string
}

// FeedItem holds either an organic post or a sponsored unit.
type FeedItem struct {
	Post *PostCard
	Ad   *AdCard
}

func (f FeedItem) Sponsored() bool {
	return f.Ad != nil
}

// InterleaveFeed places the first sponsored unit right after the after-th
// organic item. after is never allowed below FeedSponsoredAfter, and a feed
// too short to reach that point carries no sponsored unit.
func InterleaveFeed(organic []PostCard, sponsored []AdCard, after int) []FeedItem {
	if after < FeedSponsoredAfter {
		after = FeedSponsoredAfter
	}

	out := make([]FeedItem, 0, len(organic)+1)
	for i := range organic {
		out = append(out, FeedItem{Post: &organic[i]})
		if i+1 == after && len(sponsored) > 0 {
			out = append(out, FeedItem{Ad: &sponsored[0]})
		}
	}
	return out
}

type RateCardRow struct {
	Tiers string
	Price int
	Note  string
}

// RateCard is the price list for side-rail placements, per 360 hours.
var RateCard = []RateCardRow{
	{Tiers: "1 (Top slot)", Price: 100, Note: "Best visibility"},
	{Tiers: "2–3", Price: 80, Note: "High visibility"},
	{Tiers: "4–10", Price: 70, Note: "Strong rotation"},
	{Tiers: "11–20", Price: 60, Note: "Steady exposure"},
	{Tiers: "21–30", Price: 50, Note: "Budget exposure"},
	{Tiers: "31–40", Price: 40, Note: "Low-cost exposure"},
}

type FeedRate struct {
	Title string
	Price int
	Hours int
}

var FeedRates = []FeedRate{
	{Title: "Standard Sponsored", Price: 100, Hours: 60},
	{Title: "First Sponsored (Premium)", Price: 100, Hours: 24},
}

// TierPrice is the rail price in dollars for one 360 hour run; 0 for an
// unknown tier.
func TierPrice(tier int) int {
	switch {
	case tier < models.MinTier || tier > models.MaxTier:
		return 0
	case tier == 1:
		return 100
	case tier <= 3:
		return 80
	case tier <= 10:
		return 70
	case tier <= 20:
		return 60
	case tier <= 30:
		return 50
	default:
		return 40
	}
}

type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	Get(ctx context.Context, id string) (*models.Ad, error)
	SetActive(ctx context.Context, id string, active bool) error
	ListRecent(ctx context.Context, limit int) ([]models.Ad, error)
	ListLive(ctx context.Context, now time.Time) ([]models.Ad, error)
}

type CreateAdInput struct {
	Placement models.Placement
	Tier      int
	StartsAt  time.Time
	EndsAt    time.Time
	Title     string
	Body      string
	CTALabel  string
	TargetURL string
	Media     *Upload
}

type AdService struct {
	ads   AdRepository
	blobs storage.BlobStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewAdService(ads AdRepository, blobs storage.BlobStore, log *zap.SugaredLogger) *AdService {
	return &AdService{ads: ads, blobs: blobs, log: log, now: time.Now}
}

func (s *AdService) validate(in *CreateAdInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.CTALabel = strings.TrimSpace(in.CTALabel)
	in.TargetURL = strings.TrimSpace(in.TargetURL)

	if in.Title == "" {
		return invalid("title", "Title is required.")
	}
	if !in.Placement.Valid() {
		return invalid("placement", "Placement must be left, right or feed.")
	}
	if in.Placement == models.PlacementFeed {
		in.Tier = models.MinTier
	}
	if in.Tier < models.MinTier || in.Tier > models.MaxTier {
		return invalid("tier", fmt.Sprintf("Tier must be between %d and %d.", models.MinTier, models.MaxTier))
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return invalid("window", "Start and end time are required.")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return invalid("window", "End time must be after start time.")
	}
	if in.TargetURL != "" {
		u, err := url.Parse(in.TargetURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("target_url", "Link must be an http(s) URL.")
		}
	}
	if in.Media != nil {
		if _, err := storage.ValidateMedia(in.Media.ContentType, in.Media.Size); err != nil {
			return invalid("media", err.Error())
		}
	}
	return nil
}

// Create validates, uploads the optional creative and stores the ad as active.
func (s *AdService) Create(ctx context.Context, adminID string, in CreateAdInput) (*models.Ad, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	now := s.now()
	ad := &models.Ad{
		ID:        uuid.NewString(),
		CreatedBy: adminID,
		Placement: in.Placement,
		Tier:      in.Tier,
		StartsAt:  in.StartsAt.UTC(),
		EndsAt:    in.EndsAt.UTC(),
		IsActive:  true,
		Title:     in.Title,
		Body:      in.Body,
		CTALabel:  in.CTALabel,
	}
	if in.TargetURL != "" {
		ad.TargetURL = &in.TargetURL
	}

	if in.Media != nil {
		kind := string(storage.DetectMediaKind(in.Media.ContentType))
		path := storage.AdObjectPath(adminID, now, in.Media.Filename)
		if err := s.blobs.Upload(ctx, path, in.Media.ContentType, in.Media.Body, in.Media.Size, false); err != nil {
			if errors.Is(err, storage.ErrStorageDisabled) {
				return nil, invalid("media", "Media uploads are not available right now.")
			}
			return nil, fmt.Errorf("upload failed: %w", err)
		}
		ad.MediaType = &kind
		ad.MediaPath = &path
	}

	if err := s.ads.Create(ctx, ad); err != nil {
		if ad.MediaPath != nil {
			if delErr := s.blobs.Delete(ctx, *ad.MediaPath); delErr != nil {
				s.log.Warnw("orphaned ad media", "path", *ad.MediaPath, "error", delErr)
			}
		}
		return nil, fmt.Errorf("create ad: %w", err)
	}

	s.log.Infow("ad created", "ad_id", ad.ID, "placement", ad.Placement, "tier", ad.Tier, "admin_id", adminID)
	return ad, nil
}

func (s *AdService) SetActive(ctx context.Context, id string, active bool) error {
	if !validID(id) {
		return ErrNotFound
	}
	if err := s.ads.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set ad active: %w", err)
	}
	return nil
}

// Toggle flips the kill-switch and returns the ad as it now stands.
func (s *AdService) Toggle(ctx context.Context, id string) (*models.Ad, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	ad, err := s.ads.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load ad: %w", err)
	}
	if err := s.SetActive(ctx, id, !ad.IsActive); err != nil {
		return nil, err
	}
	ad.IsActive = !ad.IsActive
	return ad, nil
}

func (s *AdService) ListForAdmin(ctx context.Context) ([]models.Ad, error) {
	ads, err := s.ads.ListRecent(ctx, AdminAdsLimit)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return ads, nil
}

// ActiveCatalog fetches the live set. The store filters on the window too,
// SelectAds still re-checks every ad.
func (s *AdService) ActiveCatalog(ctx context.Context, now time.Time) ([]models.Ad, error) {
	ads, err := s.ads.ListLive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list live ads: %w", err)
	}
	return ads, nil
}

// Slots is what one page shows: both rails plus the feed unit candidates.
type Slots struct {
	Left  []models.Ad
	Right []models.Ad
	Feed  []models.Ad
}

func (s *AdService) Slots(ctx context.Context) (*Slots, error) {
	now := s.now()
	catalog, err := s.ActiveCatalog(ctx, now)
	if err != nil {
		return nil, err
	}
	return &Slots{
		Left:  SelectAds(now, models.PlacementLeft, catalog, RailLimit),
		Right: SelectAds(now, models.PlacementRight, catalog, RailLimit),
		Feed:  SelectAds(now, models.PlacementFeed, catalog, 1),
	}, nil
}
