package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// publicPages are the only pages reachable without an account.
var publicPages = []struct {
	Path       string
	ChangeFreq string
	Priority   string
}{
	{"/", "weekly", "1.0"},
	{"/advertise", "monthly", "0.8"},
	{"/policies/terms", "yearly", "0.3"},
	{"/policies/privacy", "yearly", "0.3"},
	{"/policies/advertising", "yearly", "0.3"},
}

type SEOHandler struct {
	siteURL string
}

func NewSEOHandler(siteURL string) *SEOHandler {
	return &SEOHandler{siteURL: strings.TrimRight(siteURL, "/")}
}

// RobotsTxt keeps crawlers on the public pages; everything else needs a login.
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /$
Allow: /advertise
Allow: /policies/
Disallow: /

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h *SEOHandler) SitemapXML(c *gin.Context) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range publicPages {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.siteURL + p.Path, ChangeFreq: p.ChangeFreq, Priority: p.Priority})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
