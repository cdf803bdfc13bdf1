package services

import (
	"context"
	"errors"
	"fmt"

	"aoa/internal/models"
)

// UnknownLabel stands in for an account whose anon number is not resolved.
const UnknownLabel = "User #…"

type ProfileFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error)
}

// IdentityService maps account ids to anon numbers, the only public handle.
type IdentityService struct {
	profiles ProfileFinder
}

func NewIdentityService(profiles ProfileFinder) *IdentityService {
	return &IdentityService{profiles: profiles}
}

// AnonNumber returns nil without error when the account has no profile.
func (s *IdentityService) AnonNumber(ctx context.Context, userID string) (*uint, error) {
	p, err := s.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup anon number: %w", err)
	}
	n := p.AnonNumber
	return &n, nil
}

// AnonNumbers resolves a batch; ids without a profile are simply absent.
func (s *IdentityService) AnonNumbers(ctx context.Context, userIDs []string) (map[string]uint, error) {
	ids := uniqueStrings(userIDs)
	out := make(map[string]uint, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.profiles.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup anon numbers: %w", err)
	}
	for _, p := range rows {
		out[p.UserID] = p.AnonNumber
	}
	return out, nil
}

func AnonLabel(n *uint) string {
	if n == nil {
		return UnknownLabel
	}
	return fmt.Sprintf("User #%d", *n)
}

func LabelFor(numbers map[string]uint, userID string) string {
	if n, ok := numbers[userID]; ok {
		return AnonLabel(&n)
	}
	return UnknownLabel
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
