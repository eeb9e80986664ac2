package seo

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

// XDefault is the hreflang value pointing search engines at the default locale.
const XDefault = "x-default"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
	Alternates  []string // og:locale:alternate
}

type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	Hreflang string
	Href     string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	Alternates  []Alternate
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []template.JS
}

// Page is the input to Build.
type Page struct {
	Base        string
	Locale      locale.Locale
	Path        string                   // the page's own href, e.g. "/en/about-us"
	Hrefs       map[locale.Locale]string // the same page in every locale
	Title       string
	SiteName    string
	Description string
	Image       string
	Type        string // og:type; "website" when empty
	NoIndex     bool
}

// Build assembles the meta block for one page: canonical, hreflang
// alternates with x-default, OpenGraph and Twitter cards.
func Build(p Page) Meta {
	title := p.Title
	if p.SiteName != "" && title != p.SiteName {
		title = p.Title + " | " + p.SiteName
	}
	ogType := p.Type
	if ogType == "" {
		ogType = "website"
	}
	canonical := Absolute(p.Base, p.Path)
	image := Absolute(p.Base, p.Image)
	profile := p.Locale.Profile()

	var ogAlternates []string
	for _, l := range locale.Supported() {
		if l != p.Locale {
			ogAlternates = append(ogAlternates, l.Profile().OGLocale)
		}
	}

	robots := "index, follow"
	if p.NoIndex {
		robots = "noindex, follow"
	}

	return Meta{
		Title:       title,
		Description: p.Description,
		Canonical:   canonical,
		Robots:      robots,
		Alternates:  Alternates(p.Base, p.Hrefs),
		OG: OpenGraph{
			Title:       p.Title,
			Description: p.Description,
			Image:       image,
			Type:        ogType,
			URL:         canonical,
			SiteName:    p.SiteName,
			Locale:      profile.OGLocale,
			Alternates:  ogAlternates,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       p.Title,
			Description: p.Description,
			Image:       image,
		},
	}
}

// Alternates lists hrefs in supported-locale order followed by x-default,
// which points at the default locale's URL.
func Alternates(base string, hrefs map[locale.Locale]string) []Alternate {
	if len(hrefs) == 0 {
		return nil
	}
	out := make([]Alternate, 0, len(hrefs)+1)
	for _, l := range locale.Supported() {
		href, ok := hrefs[l]
		if !ok {
			continue
		}
		out = append(out, Alternate{Hreflang: string(l), Href: Absolute(base, href)})
	}
	if href, ok := hrefs[locale.Default]; ok {
		out = append(out, Alternate{Hreflang: XDefault, Href: Absolute(base, href)})
	}
	return out
}

// Absolute joins base and an unescaped site path, percent-encoding the path.
// Absolute URLs and empty paths are returned unchanged.
func Absolute(base, p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Host == "" {
		return (&url.URL{Path: p}).String()
	}
	u.Path = strings.TrimRight(u.Path, "/") + p
	u.RawPath = ""
	return u.String()
}

// WithJSONLD appends serialized schema payloads to m.
func (m Meta) WithJSONLD(payloads ...map[string]any) Meta {
	for _, p := range payloads {
		if js := JSON(p); js != "" {
			m.JSONLD = append(m.JSONLD, js)
		}
	}
	return m
}
