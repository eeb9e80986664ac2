package httpserver

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/format"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/observability"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Links      []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type seoFiles struct {
	registry *routing.Registry
	base     string
}

// entries lists every canonical route in every locale with hreflang links.
func (s seoFiles) entries() []sitemapURL {
	var out []sitemapURL
	for _, entry := range s.registry.Entries() {
		alternates := seo.Alternates(s.base, s.registry.Alternates(entry.Canonical))
		links := make([]xhtmlLink, 0, len(alternates))
		for _, alt := range alternates {
			links = append(links, xhtmlLink{Rel: "alternate", Hreflang: alt.Hreflang, Href: alt.Href})
		}
		var lastMod string
		if post, ok := clinic.PostByCanonical(entry.Canonical); ok {
			lastMod = format.ISODate(post.Published)
		}
		freq, priority := changeFreq(entry.Kind)
		for _, l := range s.registry.Locales() {
			out = append(out, sitemapURL{
				Loc:        seo.Absolute(s.base, s.registry.Href(entry.Canonical, l)),
				LastMod:    lastMod,
				ChangeFreq: freq,
				Priority:   priority,
				Links:      links,
			})
		}
	}
	return out
}

func changeFreq(k routing.Kind) (string, string) {
	switch k {
	case routing.KindHome:
		return "weekly", "1.0"
	case routing.KindBlogs:
		return "weekly", "0.8"
	case routing.KindServices, routing.KindService:
		return "monthly", "0.9"
	case routing.KindBlog:
		return "yearly", "0.7"
	default:
		return "monthly", "0.6"
	}
}

func (s seoFiles) sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := xml.MarshalIndent(urlSet{XMLNS: sitemapNS, XHTML: xhtmlNS, URLs: s.entries()}, "", "  ")
	if err != nil {
		observability.FromContext(r.Context()).Error("encode sitemap", zap.Error(err))
		writePlainError(w, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}

func (s seoFiles) robots(w http.ResponseWriter, _ *http.Request) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /healthz\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", seo.Absolute(s.base, "/sitemap.xml"))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(b.String()))
}
