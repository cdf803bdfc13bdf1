package middleware

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionUserKey = "user_id"
	CheckUserKey   = "viewer"
)

// Viewer is the signed-in account as the templates see it.
type Viewer struct {
	UserID  string
	Label   string
	IsAdmin bool
}

type ViewerResolver interface {
	ViewerLabel(ctx context.Context, userID string) string
}

type AdminResolver interface {
	IsAdmin(ctx context.Context, userID string) bool
}

// CurrentViewer returns nil for anonymous requests.
func CurrentViewer(c *gin.Context) *Viewer {
	if v, ok := c.Get(CheckUserKey); ok {
		if viewer, ok := v.(*Viewer); ok {
			return viewer
		}
	}
	return nil
}

// ViewerID is "" for anonymous requests.
func ViewerID(c *gin.Context) string {
	if v := CurrentViewer(c); v != nil {
		return v.UserID
	}
	return ""
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// LoadUser retrieves the session's account and sets it on the context.
func LoadUser(labels ViewerResolver, admins AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID, ok := session.Get(SessionUserKey).(string); ok && userID != "" {
			ctx := c.Request.Context()
			c.Set(CheckUserKey, &Viewer{
				UserID:  userID,
				Label:   labels.ViewerLabel(ctx, userID),
				IsAdmin: admins.IsAdmin(ctx, userID),
			})
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentViewer(c) != nil {
			c.Next()
			return
		}
		if isHTMX(c) {
			c.Header("HX-Redirect", "/login")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// AdminRequired sends page requests back to the arena and refuses actions.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := CurrentViewer(c); v != nil && v.IsAdmin {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusFound, "/arena")
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admins only."})
	}
}
