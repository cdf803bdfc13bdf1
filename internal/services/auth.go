package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"aoa/internal/models"
	"aoa/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrEmailTaken         = errors.New("user already registered")
	ErrInvalidToken       = errors.New("confirmation link is invalid or has expired")
)

const confirmPurpose = "confirm"

type AccountRepository interface {
	CreateWithProfile(ctx context.Context, a *models.Account) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	MarkConfirmed(ctx context.Context, id string, at time.Time) error
}

type ConfirmationMailer interface {
	SendConfirmation(email, link string)
}

type AuthConfig struct {
	TokenSecret         string
	ConfirmTTL          time.Duration
	RequireConfirmation bool
	BaseURL             string
}

type AuthService struct {
	accounts AccountRepository
	mailer   ConfirmationMailer
	cfg      AuthConfig
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewAuthService(accounts AccountRepository, mailer ConfirmationMailer, cfg AuthConfig, log *zap.SugaredLogger) *AuthService {
	return &AuthService{accounts: accounts, mailer: mailer, cfg: cfg, log: log, now: time.Now}
}

func (s *AuthService) RequiresConfirmation() bool {
	return s.cfg.RequireConfirmation
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email", "Enter a valid email address.")
	}
	return email, nil
}

// SignUp creates the account and its anon number. When confirmation is
// required the account cannot sign in until the mailed link is followed.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.Account, *models.Profile, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, nil, invalid("password", fmt.Sprintf("Password should be at least %d characters.", MinPasswordLength))
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := &models.Account{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hash,
		CreatedAt: now,
	}
	if !s.cfg.RequireConfirmation {
		account.ConfirmedAt = &now
	}

	profile, err := s.accounts.CreateWithProfile(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("create account: %w", err)
	}
	s.log.Infow("account created", "user_id", account.ID, "anon_number", profile.AnonNumber)

	if s.cfg.RequireConfirmation {
		if err := s.sendConfirmation(account); err != nil {
			return nil, nil, err
		}
	}
	return account, profile, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if !utils.CheckPasswordHash(password, account.Password) {
		return nil, ErrInvalidCredentials
	}
	if s.cfg.RequireConfirmation && !account.IsConfirmed() {
		return nil, ErrEmailNotConfirmed
	}
	return account, nil
}

// Resend mails a fresh link. Unknown or already confirmed addresses are a
// silent success so the form does not reveal who has an account.
func (s *AuthService) Resend(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}
	if account.IsConfirmed() || !s.cfg.RequireConfirmation {
		return nil
	}
	return s.sendConfirmation(account)
}

// Confirm marks the token's account as confirmed.
func (s *AuthService) Confirm(ctx context.Context, token string) (*models.Account, error) {
	userID, err := s.parseConfirmToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	account, err := s.accounts.FindByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if account.IsConfirmed() {
		return account, nil
	}

	now := s.now().UTC()
	if err := s.accounts.MarkConfirmed(ctx, account.ID, now); err != nil {
		return nil, fmt.Errorf("confirm account: %w", err)
	}
	account.ConfirmedAt = &now
	return account, nil
}

type confirmClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (s *AuthService) confirmToken(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, confirmClaims{
		Purpose: confirmPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ConfirmTTL)),
		},
	})
	return token.SignedString([]byte(s.cfg.TokenSecret))
}

func (s *AuthService) parseConfirmToken(raw string) (string, error) {
	claims := &confirmClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.TokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Purpose != confirmPurpose || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *AuthService) sendConfirmation(account *models.Account) error {
	token, err := s.confirmToken(account.ID)
	if err != nil {
		return fmt.Errorf("sign confirmation token: %w", err)
	}
	link := s.cfg.BaseURL + "/confirm?token=" + url.QueryEscape(token)
	s.mailer.SendConfirmation(account.Email, link)
	return nil
}
