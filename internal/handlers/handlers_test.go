package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"aoa/internal/middleware"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var testLog = zap.NewNop().Sugar()

// testViews renders just enough of every page for assertions.
var testViews = map[string]string{
	"landing.html":              `landing{{if .Viewer}} {{.Viewer.Label}}{{end}}`,
	"advertise.html":            `{{range .RateCard}}{{.Tiers}}=${{.Price}};{{end}}{{range .FeedRates}}{{.Title}}={{.Hours}}h;{{end}}run={{.RunHours}} mail={{.AdsEmail}}`,
	"error.html":                `error: {{.Error}}`,
	"arena.html":                `arena items={{len .Page.Feed}}{{range .Flashes}} flash={{.}}{{end}}`,
	"post.html":                 `post {{.Page.Card.Post.ID}}{{range .Flashes}} flash={{.}}{{end}}`,
	"create.html":               `create{{if .Error}} error={{.Error}}{{end}} prompt={{.Prompt}}`,
	"auth/login.html":           `login{{if .Error}} error={{.Error}}{{end}}{{if .Success}} success={{.Success}}{{end}}{{if .CanResend}} resend{{end}}`,
	"auth/signup.html":          `signup{{if .Error}} error={{.Error}}{{end}} email={{.Email}}`,
	"admin/ads.html":            `{{if .Denied}}denied{{else}}ads={{len .Ads}}{{if .Error}} error={{.Error}}{{end}}{{range .Flashes}} flash={{.}}{{end}}{{end}}`,
	"admin/reports.html":        `reports={{len .Reports}}{{range .Flashes}} flash={{.}}{{end}}`,
	"policies/terms.html":       `terms`,
	"policies/privacy.html":     `privacy`,
	"policies/advertising.html": `ad policy {{.AdsEmail}}`,
}

func newTestEngine(viewer *middleware.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	render := multitemplate.NewRenderer()
	for name, body := range testViews {
		render.AddFromString(name, body)
	}
	r.HTMLRender = render

	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(func(c *gin.Context) {
		if viewer != nil {
			c.Set(middleware.CheckUserKey, viewer)
		}
		c.Next()
	})
	return r
}

var (
	alice = &middleware.Viewer{UserID: "alice", Label: "User #1"}
	boss  = &middleware.Viewer{UserID: "boss", Label: "User #2", IsAdmin: true}
)

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var errors500 = errors.New("connection refused")
