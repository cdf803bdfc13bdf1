package services

import (
	"context"

	"go.uber.org/zap"
)

type AdminChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type AdminService struct {
	admins AdminChecker
	log    *zap.SugaredLogger
}

func NewAdminService(admins AdminChecker, log *zap.SugaredLogger) *AdminService {
	return &AdminService{admins: admins, log: log}
}

// IsAdmin checks the allow-list. A failed lookup counts as not admin.
func (s *AdminService) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	ok, err := s.admins.Exists(ctx, userID)
	if err != nil {
		s.log.Warnw("admin lookup failed", "user_id", userID, "error", err)
		return false
	}
	return ok
}
