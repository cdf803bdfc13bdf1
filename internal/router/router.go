package router

import (
	"aoa/internal/handlers"
	"aoa/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Arena    *handlers.ArenaHandler
	Comments *handlers.CommentHandler
	Admin    *handlers.AdminHandler
	Pages    *handlers.PageHandler
	SEO      *handlers.SEOHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Public routes
	r.GET("/", h.Pages.Landing)
	r.GET("/advertise", h.Pages.Advertise)
	r.GET("/policies/:name", h.Pages.Policy)
	r.GET("/healthz", h.Pages.Healthz)
	r.GET("/robots.txt", h.SEO.RobotsTxt)
	r.GET("/sitemap.xml", h.SEO.SitemapXML)
	r.NoRoute(h.Pages.NotFound)

	r.GET("/signup", h.Auth.ShowSignup)
	r.POST("/signup", h.Auth.Signup)
	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	r.POST("/login/resend", h.Auth.Resend)
	r.GET("/confirm", h.Auth.Confirm)
	r.GET("/logout", h.Auth.Logout)

	// Signed-in routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/arena", h.Arena.Arena)
		authorized.GET("/create", h.Arena.ShowCreate)
		authorized.POST("/create", h.Arena.Create)
		authorized.GET("/post/:id", h.Arena.Post)
		authorized.POST("/post/:id/vote", h.Arena.Vote)
		authorized.POST("/post/:id/comments", h.Comments.Create)
		authorized.POST("/comments/:id/react", h.Comments.React)
		authorized.POST("/report", h.Comments.Report)

		// the ads page renders its own access denied card
		authorized.GET("/admin/ads", h.Admin.Ads)
	}

	// Admin routes
	admin := authorized.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.POST("/ads", h.Admin.CreateAd)
		admin.POST("/ads/:id/toggle", h.Admin.ToggleAd)
		admin.GET("/reports", h.Admin.Reports)
		admin.POST("/reports/:id/dismiss", h.Admin.DismissReport)
		admin.POST("/posts/:id/delete", h.Admin.DeletePost)
	}
}
