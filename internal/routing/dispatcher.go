package routing

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

// Action is what the dispatcher decided to do with a request path.
type Action int

const (
	ActionRender Action = iota
	ActionRedirect
	ActionNotFound
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionRedirect:
		return "redirect"
	default:
		return "not_found"
	}
}

// Outcome is the pure result of resolving a path.
type Outcome struct {
	Action    Action
	Locale    locale.Locale
	Canonical Canonical
	// Location and Status are set for redirects.
	Location string
	Status   int
	// Negotiated reports that the locale came from request headers or cookies
	// rather than the path.
	Negotiated bool
}

// ResolvedRequest is the per-request routing result handed to page rendering.
type ResolvedRequest struct {
	Locale    locale.Locale
	Canonical Canonical
	Kind      Kind
	Params    map[string]string
}

// Param returns the named parameter or "".
func (r ResolvedRequest) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// Pages renders dispatched requests.
type Pages interface {
	ServePage(w http.ResponseWriter, r *http.Request, req ResolvedRequest)
	ServeNotFound(w http.ResponseWriter, r *http.Request, l locale.Locale)
}

// Dispatcher is the entry point for every page request. It holds no
// per-request state.
type Dispatcher struct {
	registry *Registry
	resolver *locale.Resolver
	pages    Pages
	// params lists the query parameters forwarded into ResolvedRequest.Params.
	params []string
}

// NewDispatcher wires the registry, the locale resolver and the page renderer.
func NewDispatcher(reg *Registry, resolver *locale.Resolver, pages Pages, params ...string) *Dispatcher {
	if reg == nil {
		reg = Default()
	}
	if resolver == nil {
		resolver = locale.NewResolver(locale.Default)
	}
	return &Dispatcher{registry: reg, resolver: resolver, pages: pages, params: params}
}

// Resolve maps a request path and negotiation signal to an Outcome. The path
// may be decoded or percent-encoded.
func (d *Dispatcher) Resolve(rawPath string, signal locale.Signal) Outcome {
	p := cleanPath(rawPath)

	// The site root always goes to the default locale home, whatever the
	// registry or the visitor's language preference says.
	if p == "/" {
		return Outcome{
			Action:   ActionRedirect,
			Locale:   d.resolver.Default(),
			Location: "/" + string(d.resolver.Default()),
			Status:   http.StatusTemporaryRedirect,
		}
	}

	first, rest := splitFirstSegment(p)
	if l, ok := d.prefixLocale(first); ok {
		return d.resolvePrefixed(l, rest)
	}

	l := d.resolver.Resolve("", signal)
	if c, ok := d.registry.CanonicalFor(l, p); ok {
		return d.redirect(c, l, http.StatusTemporaryRedirect, true)
	}
	if _, ok := d.registry.Entry(Canonical(p)); ok {
		return d.redirect(Canonical(p), l, http.StatusTemporaryRedirect, true)
	}
	for _, other := range d.registry.Locales() {
		if other == l {
			continue
		}
		if c, ok := d.registry.CanonicalFor(other, p); ok {
			return d.redirect(c, other, http.StatusTemporaryRedirect, true)
		}
	}
	return Outcome{Action: ActionNotFound, Locale: l, Negotiated: true}
}

func (d *Dispatcher) prefixLocale(segment string) (locale.Locale, bool) {
	// Only exact lower-case codes count as a prefix: "/EN" or "/en-us" are slugs.
	l := locale.Locale(segment)
	for _, supported := range d.registry.Locales() {
		if supported == l {
			return l, true
		}
	}
	return "", false
}

func (d *Dispatcher) resolvePrefixed(l locale.Locale, slug string) Outcome {
	if c, ok := d.registry.CanonicalFor(l, slug); ok {
		return Outcome{Action: ActionRender, Locale: l, Canonical: c}
	}
	// Internal canonical keys are accepted and corrected to the public slug.
	if _, ok := d.registry.Entry(Canonical(slug)); ok {
		return d.redirect(Canonical(slug), l, http.StatusPermanentRedirect, false)
	}
	// A slug from another locale's table keeps the requested locale.
	for _, other := range d.registry.Locales() {
		if other == l {
			continue
		}
		if c, ok := d.registry.CanonicalFor(other, slug); ok {
			return d.redirect(c, l, http.StatusPermanentRedirect, false)
		}
	}
	return Outcome{Action: ActionNotFound, Locale: l}
}

func (d *Dispatcher) redirect(c Canonical, l locale.Locale, status int, negotiated bool) Outcome {
	return Outcome{
		Action:     ActionRedirect,
		Locale:     l,
		Canonical:  c,
		Location:   d.registry.Href(c, l),
		Status:     status,
		Negotiated: negotiated,
	}
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	out := d.Resolve(r.URL.Path, locale.SignalFromRequest(r))
	if out.Negotiated {
		w.Header().Add("Vary", "Accept-Language, Cookie")
	}

	switch out.Action {
	case ActionRedirect:
		target := &url.URL{Path: out.Location, RawQuery: r.URL.RawQuery}
		http.Redirect(w, r, target.String(), out.Status)
	case ActionRender:
		if c, err := r.Cookie(locale.CookieName); err != nil || c.Value != string(out.Locale) {
			http.SetCookie(w, &http.Cookie{
				Name:     locale.CookieName,
				Value:    string(out.Locale),
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				SameSite: http.SameSiteLaxMode,
			})
		}
		entry, _ := d.registry.Entry(out.Canonical)
		req := ResolvedRequest{
			Locale:    out.Locale,
			Canonical: out.Canonical,
			Kind:      entry.Kind,
			Params:    d.collectParams(r),
		}
		d.pages.ServePage(w, r.WithContext(WithResolved(r.Context(), req)), req)
	default:
		d.pages.ServeNotFound(w, r, out.Locale)
	}
}

func (d *Dispatcher) collectParams(r *http.Request) map[string]string {
	params := make(map[string]string, len(d.params))
	if len(d.params) == 0 {
		return params
	}
	q := r.URL.Query()
	for _, name := range d.params {
		if v := q.Get(name); v != "" {
			params[name] = v
		}
	}
	return params
}

func cleanPath(raw string) string {
	p := strings.TrimSpace(raw)
	if strings.Contains(p, "%") {
		if decoded, err := url.PathUnescape(p); err == nil {
			p = decoded
		}
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// splitFirstSegment splits "/en/a/b" into "en" and "/a/b".
func splitFirstSegment(p string) (string, string) {
	trimmed := strings.TrimPrefix(p, "/")
	i := strings.IndexByte(trimmed, '/')
	if i == -1 {
		return trimmed, "/"
	}
	return trimmed[:i], trimmed[i:]
}
