package handlers

import (
	"context"
	"net/http"
	"time"

	"aoa/internal/models"
	"aoa/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var policyPages = map[string]string{
	"terms":       "policies/terms.html",
	"privacy":     "policies/privacy.html",
	"advertising": "policies/advertising.html",
}

type PageHandler struct {
	adsEmail string
	ping     func(ctx context.Context) error
	log      *zap.SugaredLogger
}

// NewPageHandler serves the static pages. ping backs /healthz.
func NewPageHandler(adsEmail string, ping func(ctx context.Context) error, log *zap.SugaredLogger) *PageHandler {
	return &PageHandler{adsEmail: adsEmail, ping: ping, log: log}
}

func (h *PageHandler) Landing(c *gin.Context) {
	Render(c, http.StatusOK, "landing.html", nil)
}

func (h *PageHandler) Advertise(c *gin.Context) {
	Render(c, http.StatusOK, "advertise.html", gin.H{
		"RateCard":  services.RateCard,
		"FeedRates": services.FeedRates,
		"RunHours":  int(models.DefaultAdRun / time.Hour),
		"AdsEmail":  h.adsEmail,
	})
}

func (h *PageHandler) Policy(c *gin.Context) {
	name, ok := policyPages[c.Param("name")]
	if !ok {
		RenderError(c, http.StatusNotFound, "Page not found.")
		return
	}
	Render(c, http.StatusOK, name, gin.H{"AdsEmail": h.adsEmail})
}

func (h *PageHandler) NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found.")
}

func (h *PageHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			h.log.Warnw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
