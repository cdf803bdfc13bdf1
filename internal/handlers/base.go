package handlers

import (
	"errors"
	"net/http"

	"aoa/internal/middleware"
	"aoa/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericError = "Something went wrong. Please try again."

// Render helper to inject common variables like the current viewer
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if v := middleware.CurrentViewer(c); v != nil {
		obj["Viewer"] = v
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// HTMX Redirect helper
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK)
}

// redirect answers HTMX requests with HX-Redirect and everything else with a 302.
func redirect(c *gin.Context, path string) {
	if c.GetHeader("HX-Request") == "true" {
		HtmxRedirect(c, path)
		return
	}
	c.Redirect(http.StatusFound, path)
}

func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// errorStatus maps service errors onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case services.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// msg is the text shown to the user. Store failures are logged, not shown.
func msg(err error) string {
	var verr *services.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, services.ErrNotFound):
		return "Not found."
	}
	return genericError
}

// fail writes err as JSON and logs anything unexpected.
func fail(c *gin.Context, log *zap.SugaredLogger, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(code, gin.H{"error": msg(err)})
}

// failPage renders err on the error page and logs anything unexpected.
func failPage(c *gin.Context, log *zap.SugaredLogger, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
	}
	RenderError(c, code, msg(err))
}

func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

func takeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
