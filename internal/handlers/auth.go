package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"aoa/internal/middleware"
	"aoa/internal/models"
	"aoa/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*models.Account, *models.Profile, error)
	SignIn(ctx context.Context, email, password string) (*models.Account, error)
	Resend(ctx context.Context, email string) error
	Confirm(ctx context.Context, token string) (*models.Account, error)
	RequiresConfirmation() bool
}

type AuthHandler struct {
	auth Authenticator
	log  *zap.SugaredLogger
}

func NewAuthHandler(auth Authenticator, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// authMessage turns auth failures into the text shown on the forms.
func authMessage(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid login credentials"
	case errors.Is(err, services.ErrEmailNotConfirmed):
		return http.StatusForbidden, "Email not confirmed"
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict, "User already registered"
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusBadRequest, "Confirmation link is invalid or has expired."
	}
	return errorStatus(err), msg(err)
}

func startSession(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserKey, userID)
	return session.Save()
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	if middleware.CurrentViewer(c) != nil {
		c.Redirect(http.StatusFound, "/arena")
		return
	}
	Render(c, http.StatusOK, "auth/signup.html", nil)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	account, _, err := h.auth.SignUp(c.Request.Context(), email, password)
	if err != nil {
		code, text := authMessage(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("signup failed", "error", err)
		}
		Render(c, code, "auth/signup.html", gin.H{"Error": text, "Email": email})
		return
	}

	if h.auth.RequiresConfirmation() {
		Render(c, http.StatusOK, "auth/login.html", gin.H{
			"Success": "Check your email to confirm your account, then log in.",
			"Email":   account.Email,
		})
		return
	}

	if err := startSession(c, account.ID); err != nil {
		h.log.Errorw("save session", "error", err)
		RenderError(c, http.StatusInternalServerError, genericError)
		return
	}
	c.Redirect(http.StatusFound, "/arena")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.CurrentViewer(c) != nil {
		c.Redirect(http.StatusFound, "/arena")
		return
	}
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	account, err := h.auth.SignIn(c.Request.Context(), email, password)
	if err != nil {
		code, text := authMessage(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("login failed", "error", err)
		}
		Render(c, code, "auth/login.html", gin.H{
			"Error":     text,
			"Email":     email,
			"CanResend": errors.Is(err, services.ErrEmailNotConfirmed),
		})
		return
	}

	if err := startSession(c, account.ID); err != nil {
		h.log.Errorw("save session", "error", err)
		RenderError(c, http.StatusInternalServerError, genericError)
		return
	}
	c.Redirect(http.StatusFound, "/arena")
}

// Resend never says whether the address has an account.
func (h *AuthHandler) Resend(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if err := h.auth.Resend(c.Request.Context(), email); err != nil {
		code, text := authMessage(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("resend confirmation", "error", err)
		}
		Render(c, code, "auth/login.html", gin.H{"Error": text, "Email": email, "CanResend": true})
		return
	}
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Success": "If that account is waiting for confirmation, a new link is on its way.",
		"Email":   email,
	})
}

func (h *AuthHandler) Confirm(c *gin.Context) {
	account, err := h.auth.Confirm(c.Request.Context(), c.Query("token"))
	if err != nil {
		code, text := authMessage(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("confirm account", "error", err)
		}
		Render(c, code, "auth/login.html", gin.H{"Error": text, "CanResend": true})
		return
	}

	if err := startSession(c, account.ID); err != nil {
		h.log.Errorw("save session", "error", err)
		RenderError(c, http.StatusInternalServerError, genericError)
		return
	}
	c.Redirect(http.StatusFound, "/arena")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Warnw("clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}
