package routing

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

// RegistryError lists every consistency problem found in a route table.
type RegistryError struct {
	Problems []string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("routing: invalid pathname registry: %s", strings.Join(e.Problems, "; "))
}

// Registry is the immutable, bidirectional canonical <-> slug mapping.
// It is safe for concurrent use.
type Registry struct {
	locales     []locale.Locale
	entries     []Entry
	byCanonical map[Canonical]int
	bySlug      map[locale.Locale]map[string]Canonical
}

// NewRegistry validates entries against locales and builds the lookup indexes.
func NewRegistry(locales []locale.Locale, entries []Entry) (*Registry, error) {
	r := &Registry{
		locales:     append([]locale.Locale(nil), locales...),
		entries:     make([]Entry, 0, len(entries)),
		byCanonical: make(map[Canonical]int, len(entries)),
		bySlug:      make(map[locale.Locale]map[string]Canonical, len(locales)),
	}
	for _, l := range locales {
		r.bySlug[l] = make(map[string]Canonical, len(entries))
	}

	var problems []string
	for _, e := range entries {
		if e.Canonical == "" || !strings.HasPrefix(string(e.Canonical), "/") {
			problems = append(problems, fmt.Sprintf("canonical %q must start with /", e.Canonical))
			continue
		}
		if _, dup := r.byCanonical[e.Canonical]; dup {
			problems = append(problems, fmt.Sprintf("canonical %q defined twice", e.Canonical))
			continue
		}
		slugs := make(map[locale.Locale]string, len(locales))
		for _, l := range locales {
			raw, ok := e.Slugs[l]
			if !ok {
				problems = append(problems, fmt.Sprintf("canonical %q has no %s slug", e.Canonical, l))
				continue
			}
			if !strings.HasPrefix(raw, "/") {
				problems = append(problems, fmt.Sprintf("canonical %q %s slug %q must start with /", e.Canonical, l, raw))
				continue
			}
			slug := normalizeSlug(raw)
			if other, taken := r.bySlug[l][slug]; taken {
				problems = append(problems, fmt.Sprintf("%s slug %q used by %q and %q", l, slug, other, e.Canonical))
				continue
			}
			r.bySlug[l][slug] = e.Canonical
			slugs[l] = slug
		}
		r.byCanonical[e.Canonical] = len(r.entries)
		r.entries = append(r.entries, Entry{Canonical: e.Canonical, Kind: e.Kind, Slugs: slugs})
	}
	if len(problems) > 0 {
		return nil, &RegistryError{Problems: problems}
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on an invalid table.
func MustRegistry(locales []locale.Locale, entries []Entry) *Registry {
	r, err := NewRegistry(locales, entries)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry built from Pathnames.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustRegistry(locale.Supported(), Pathnames)
	})
	return defaultRegistry
}

// Locales returns the locales the registry covers.
func (r *Registry) Locales() []locale.Locale {
	return append([]locale.Locale(nil), r.locales...)
}

// Entries returns the route table in declaration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, cloneEntry(e))
	}
	return out
}

// Entry returns the entry registered for c.
func (r *Registry) Entry(c Canonical) (Entry, bool) {
	i, ok := r.byCanonical[c]
	if !ok {
		return Entry{}, false
	}
	return cloneEntry(r.entries[i]), true
}

func cloneEntry(e Entry) Entry {
	slugs := make(map[locale.Locale]string, len(e.Slugs))
	for l, s := range e.Slugs {
		slugs[l] = s
	}
	e.Slugs = slugs
	return e
}

// SlugFor returns the public slug of c in l. Every registered canonical has a
// slug for every registry locale; unknown routes yield "".
func (r *Registry) SlugFor(c Canonical, l locale.Locale) string {
	i, ok := r.byCanonical[c]
	if !ok {
		return ""
	}
	return r.entries[i].Slugs[l]
}

// CanonicalFor resolves a localized slug back to its canonical route.
func (r *Registry) CanonicalFor(l locale.Locale, slug string) (Canonical, bool) {
	table, ok := r.bySlug[l]
	if !ok {
		return "", false
	}
	c, ok := table[normalizeSlug(slug)]
	return c, ok
}

// Href returns the locale-prefixed public path of c in l.
func (r *Registry) Href(c Canonical, l locale.Locale) string {
	slug := r.SlugFor(c, l)
	if slug == "" || slug == "/" {
		return "/" + string(l)
	}
	return "/" + string(l) + slug
}

// Alternates returns the public path of c in every registry locale.
func (r *Registry) Alternates(c Canonical) map[locale.Locale]string {
	out := make(map[locale.Locale]string, len(r.locales))
	for _, l := range r.locales {
		out[l] = r.Href(c, l)
	}
	return out
}

// Children returns the routes of kind k in declaration order.
func (r *Registry) Children(k Kind) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Kind == k {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// Canonicals returns every canonical key, sorted.
func (r *Registry) Canonicals() []Canonical {
	out := make([]Canonical, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Canonical)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func normalizeSlug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "/"
	}
	s = norm.NFC.String(s)
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return path.Clean(s)
}
