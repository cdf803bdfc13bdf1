package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"aoa/internal/middleware"
	"aoa/internal/models"
	"aoa/internal/services"
	"aoa/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// datetimeLayout is what <input type="datetime-local"> submits.
const datetimeLayout = "2006-01-02T15:04"

type AdManager interface {
	Create(ctx context.Context, adminID string, in services.CreateAdInput) (*models.Ad, error)
	Toggle(ctx context.Context, id string) (*models.Ad, error)
	ListForAdmin(ctx context.Context) ([]models.Ad, error)
}

type ReportModerator interface {
	List(ctx context.Context) ([]models.Report, error)
	Dismiss(ctx context.Context, id string) error
}

type PostDeleter interface {
	Delete(ctx context.Context, id string) error
}

type AdminHandler struct {
	ads     AdManager
	reports ReportModerator
	posts   PostDeleter
	log     *zap.SugaredLogger
}

func NewAdminHandler(ads AdManager, reports ReportModerator, posts PostDeleter, log *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{ads: ads, reports: reports, posts: posts, log: log}
}

func (h *AdminHandler) renderAds(c *gin.Context, code int, data gin.H) {
	ads, err := h.ads.ListForAdmin(c.Request.Context())
	if err != nil {
		h.log.Errorw("list ads", "error", err)
		data["ListError"] = genericError
	}
	data["Ads"] = ads
	data["Placements"] = []models.Placement{models.PlacementLeft, models.PlacementRight, models.PlacementFeed}
	data["MinTier"] = models.MinTier
	data["MaxTier"] = models.MaxTier
	data["RateCard"] = services.RateCard
	data["Now"] = time.Now()
	Render(c, code, "admin/ads.html", data)
}

// Ads shows the ad manager. Signed-in non-admins get an access denied card.
func (h *AdminHandler) Ads(c *gin.Context) {
	if v := middleware.CurrentViewer(c); v == nil || !v.IsAdmin {
		Render(c, http.StatusForbidden, "admin/ads.html", gin.H{"Denied": true})
		return
	}
	h.renderAds(c, http.StatusOK, gin.H{"Flashes": takeFlashes(c)})
}

func parseWindow(raw string, loc *time.Location) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(datetimeLayout, raw, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (h *AdminHandler) CreateAd(c *gin.Context) {
	tier := utils.FormInt(c.PostForm("tier"), 0)
	loc := time.UTC
	if offset, err := strconv.Atoi(c.PostForm("tz_offset")); err == nil {
		loc = time.FixedZone("client", -offset*60)
	}

	in := services.CreateAdInput{
		Placement: models.Placement(c.PostForm("placement")),
		Tier:      tier,
		StartsAt:  parseWindow(c.PostForm("starts_at"), loc),
		EndsAt:    parseWindow(c.PostForm("ends_at"), loc),
		Title:     c.PostForm("title"),
		Body:      c.PostForm("body"),
		CTALabel:  c.PostForm("cta_label"),
		TargetURL: c.PostForm("target_url"),
	}
	if c.PostForm("starts_at") == "" && c.PostForm("ends_at") == "" {
		in.StartsAt = time.Now()
		in.EndsAt = in.StartsAt.Add(models.DefaultAdRun)
	}

	media, closeMedia, err := formUpload(c, "media")
	if err != nil {
		h.renderAds(c, http.StatusBadRequest, gin.H{"Error": "Could not read the uploaded file.", "Form": in})
		return
	}
	defer closeMedia()
	in.Media = media

	ad, err := h.ads.Create(c.Request.Context(), middleware.ViewerID(c), in)
	if err != nil {
		code := errorStatus(err)
		if code == http.StatusInternalServerError {
			h.log.Errorw("create ad", "error", err)
		}
		in.Media = nil
		h.renderAds(c, code, gin.H{"Error": msg(err), "Form": in})
		return
	}
	flash(c, "Ad \""+ad.Title+"\" is live.")
	redirect(c, "/admin/ads")
}

func (h *AdminHandler) ToggleAd(c *gin.Context) {
	ad, err := h.ads.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	h.log.Infow("ad toggled", "ad_id", ad.ID, "active", ad.IsActive, "admin_id", middleware.ViewerID(c))
	if c.GetHeader("HX-Request") == "true" {
		c.JSON(http.StatusOK, gin.H{"id": ad.ID, "is_active": ad.IsActive})
		return
	}
	c.Redirect(http.StatusFound, "/admin/ads")
}

func (h *AdminHandler) Reports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		failPage(c, h.log, err)
		return
	}
	Render(c, http.StatusOK, "admin/reports.html", gin.H{"Reports": reports, "Flashes": takeFlashes(c)})
}

func (h *AdminHandler) DismissReport(c *gin.Context) {
	if err := h.reports.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	redirect(c, "/admin/reports")
}

// DeletePost removes a reported post with its votes, comments and media.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	h.log.Infow("post removed by admin", "post_id", id, "admin_id", middleware.ViewerID(c))
	flash(c, "Post removed.")
	redirect(c, "/admin/reports")
}
