package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"aoa/internal/config"
	"aoa/internal/db"
	"aoa/internal/handlers"
	"aoa/internal/middleware"
	"aoa/internal/router"
	"aoa/internal/services"
	"aoa/internal/storage"
	"aoa/internal/store"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		panic(err)
	}

	zlog, err := newLogger(cfg.Server.Debug)
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()
	log := zlog.Sugar()

	// Initialize Database
	conn, err := db.Open(cfg.Database.DSN, cfg.Server.Debug, log)
	if err != nil {
		log.Fatalw("open database", "error", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalw("migrate database", "error", err)
	}
	if err := db.SeedAdmins(conn, cfg.Admin.UserIDs); err != nil {
		log.Fatalw("seed admins", "error", err)
	}
	st := store.New(conn)

	var blobs storage.BlobStore = storage.DisabledStore{}
	if cfg.StorageEnabled() {
		s3store, err := storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			log.Fatalw("init media storage", "error", err)
		}
		blobs = s3store
	} else {
		log.Warn("media storage disabled: missing STORAGE_ENDPOINT or credentials")
	}

	// Services
	mail := services.NewMailService(cfg.Mail, cfg.Server.TemplatesDir, log)
	identity := services.NewIdentityService(st.Profiles)
	media, err := services.NewMediaURLs(blobs, cfg.Storage.SignedURLTTL, cfg.Storage.PublicBaseURL != "", log)
	if err != nil {
		log.Fatalw("init media urls", "error", err)
	}
	posts := services.NewPostService(st.Posts, blobs, log)
	votes := services.NewVoteService(st.Votes, st.Posts)
	comments := services.NewCommentService(st.Comments, st.Posts, st.Votes, st.Reactions, identity)
	reactions := services.NewReactionService(st.Reactions, st.Comments)
	reports := services.NewReportService(st.Reports, st.Posts, st.Comments)
	ads := services.NewAdService(st.Ads, blobs, log)
	admins := services.NewAdminService(st.Admins, log)
	arena := services.NewArenaService(posts, votes, comments, identity, ads, media, log)
	auth := services.NewAuthService(st.Accounts, mail, services.AuthConfig{
		TokenSecret:         cfg.Auth.TokenSecret,
		ConfirmTTL:          cfg.Auth.ConfirmTTL,
		RequireConfirmation: cfg.Auth.RequireConfirmation,
		BaseURL:             cfg.Server.BaseURL,
	}, log)

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.Recover(log))

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.Session.Secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 3600,
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.Server.BaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.Session.Name, sessionStore))

	r.HTMLRender = loadTemplates(cfg.Server.TemplatesDir)
	r.Static("/static", cfg.Server.StaticDir)

	r.Use(middleware.LoadUser(arena, admins))

	ping := func(ctx context.Context) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	router.RegisterRoutes(r, router.Handlers{
		Auth:     handlers.NewAuthHandler(auth, log),
		Arena:    handlers.NewArenaHandler(arena, posts, votes, log),
		Comments: handlers.NewCommentHandler(comments, reactions, reports, log),
		Admin:    handlers.NewAdminHandler(ads, reports, posts, log),
		Pages:    handlers.NewPageHandler(cfg.Server.AdsEmail, ping, log),
		SEO:      handlers.NewSEOHandler(cfg.Server.BaseURL),
	})

	log.Infow("AOA server starting", "port", cfg.Server.Port, "confirmation", cfg.Auth.RequireConfirmation, "storage", cfg.StorageEnabled())
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// views lists every page template, keyed by the name handlers render.
var views = []string{
	"landing.html",
	"advertise.html",
	"error.html",
	"arena.html",
	"post.html",
	"create.html",
	"auth/login.html",
	"auth/signup.html",
	"admin/ads.html",
	"admin/reports.html",
	"policies/terms.html",
	"policies/privacy.html",
	"policies/advertising.html",
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}
	components, err := filepath.Glob(templatesDir + "/components/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(components)+1)
		files = append(files, layouts...)
		files = append(files, components...)
		return append(files, view)
	}

	funcMap := templateFuncs()
	for _, name := range views {
		r.AddFromFilesFuncs(name, funcMap, assemble(filepath.Join(templatesDir, "views", name))...)
	}
	return r
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": timeAgo,
		"timeLeft": func(t time.Time) string {
			d := time.Until(t)
			if d <= 0 {
				return "closed"
			}
			if d < time.Hour {
				return fmt.Sprintf("%dm left", int(d.Minutes()))
			}
			return fmt.Sprintf("%dh left", int(d.Hours()))
		},
		"datetimeLocal": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02T15:04")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%dd ago", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%dmo ago", seconds/2592000)
	}
	return fmt.Sprintf("%dy ago", seconds/31536000)
}
