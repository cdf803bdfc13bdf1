package utils

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxLinkText is how much of a bare URL a comment shows before eliding it.
const MaxLinkText = 48

// EnhanceHTMLContent marks links as user content and shortens bare URLs.
// Input must already be sanitized.
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		rel := strings.Fields(s.AttrOr("rel", ""))
		if !contains(rel, "ugc") {
			rel = append(rel, "ugc")
		}
		s.SetAttr("rel", strings.Join(rel, " "))

		href, _ := s.Attr("href")
		text := s.Text()
		if text == href && utf8.RuneCountInString(text) > MaxLinkText {
			s.SetText(string([]rune(text)[:MaxLinkText-1]) + "…")
			s.SetAttr("title", href)
		}
	})

	// goquery renders full document tags if missing, we just want the body content
	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}

	return template.HTML(html)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
