package nav

import (
	"path"
	"strings"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

// Labels resolves navigation label keys. *i18n.Scope satisfies it.
type Labels interface {
	String(key string) string
}

// Item represents a top-level navigation item.
type Item struct {
	Canonical routing.Canonical
	LabelKey  string // key in the "nav" namespace
}

// Link is a view model for templates.
type Link struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// LangLink points at the current page in another locale.
type LangLink struct {
	Locale  locale.Locale
	Name    string
	Href    string
	Current bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Canonical: routing.Home, LabelKey: "home"},
	{Canonical: routing.About, LabelKey: "about"},
	{Canonical: routing.Services, LabelKey: "services"},
	{Canonical: routing.BeforeAfter, LabelKey: "beforeAfter"},
	{Canonical: routing.Blogs, LabelKey: "blogs"},
	{Canonical: routing.Team, LabelKey: "team"},
	{Canonical: routing.Contact, LabelKey: "contact"},
}

// Build renders navigation items for l with active state given the current
// canonical route. Article and service pages activate their section.
func Build(reg *routing.Registry, l locale.Locale, current routing.Canonical, labels Labels) []Link {
	items := make([]Link, 0, len(Main))
	for _, it := range Main {
		items = append(items, Link{
			Href:   reg.Href(it.Canonical, l),
			Label:  labels.String(it.LabelKey),
			Active: isActive(string(it.Canonical), string(current)),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/services" or "/services/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds Home › Section › Page for current. title labels the
// last crumb; sections take their label from the Main definition.
func Breadcrumbs(reg *routing.Registry, l locale.Locale, current routing.Canonical, labels Labels, title string) []Crumb {
	crumbs := []Crumb{{Href: reg.Href(routing.Home, l), Label: labels.String("home"), Active: current == routing.Home}}
	if current == routing.Home {
		return crumbs
	}

	if parent := routing.Canonical(path.Dir(string(current))); parent != routing.Home {
		if key, ok := labelKey(parent); ok {
			crumbs = append(crumbs, Crumb{Href: reg.Href(parent, l), Label: labels.String(key)})
		}
	}

	if title == "" {
		if key, ok := labelKey(current); ok {
			title = labels.String(key)
		}
	}
	return append(crumbs, Crumb{Href: reg.Href(current, l), Label: title, Active: true})
}

func labelKey(c routing.Canonical) (string, bool) {
	for _, it := range Main {
		if it.Canonical == c {
			return it.LabelKey, true
		}
	}
	return "", false
}

// SchemaItems converts crumbs to BreadcrumbList input with absolute URLs.
func SchemaItems(base string, crumbs []Crumb) []seo.BreadcrumbItem {
	out := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		out = append(out, seo.BreadcrumbItem{Name: c.Label, Item: seo.Absolute(base, c.Href)})
	}
	return out
}

// LanguageSwitch lists the current page in every supported locale.
func LanguageSwitch(reg *routing.Registry, l locale.Locale, current routing.Canonical) []LangLink {
	locales := reg.Locales()
	out := make([]LangLink, 0, len(locales))
	for _, other := range locales {
		out = append(out, LangLink{
			Locale:  other,
			Name:    other.Profile().Name,
			Href:    reg.Href(current, other),
			Current: other == l,
		})
	}
	return out
}
