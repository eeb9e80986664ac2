package cms

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

const (
	// BodyKey is the catalog key holding an article's Markdown body.
	BodyKey = "body"

	defaultCacheTTL = 5 * time.Minute
	wordsPerMinute  = 200
	excerptRunes    = 180
)

// Heading is an h2/h3 entry of an article's table of contents.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Article is a rendered, sanitized blog body.
type Article struct {
	HTML           template.HTML
	Excerpt        string
	Words          int
	ReadingMinutes int
	Headings       []Heading
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithCacheTTL overrides how long rendered articles are kept. Zero or
// negative values disable the cache.
func WithCacheTTL(d time.Duration) Option {
	return func(r *Renderer) { r.ttl = d }
}

// WithClock overrides the cache clock (primarily for tests).
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

type cacheEntry struct {
	article Article
	expires time.Time
}

// Renderer turns catalog Markdown into sanitized HTML and caches the result
// per (locale, namespace). It is safe for concurrent use.
type Renderer struct {
	catalog *i18n.Catalog
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	ttl     time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewRenderer builds a renderer reading bodies from catalog.
func NewRenderer(catalog *i18n.Catalog, opts ...Option) *Renderer {
	r := &Renderer{
		catalog: catalog,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newArticlePolicy(),
		ttl:    defaultCacheTTL,
		now:    time.Now,
		items:  map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newArticlePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "table")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Article renders the body stored under namespace for l.
func (r *Renderer) Article(ctx context.Context, l locale.Locale, namespace string) (Article, error) {
	if err := ctx.Err(); err != nil {
		return Article{}, err
	}
	key := string(l) + "|" + namespace
	if a, ok := r.cached(key); ok {
		return a, nil
	}

	raw, err := r.catalog.Lookup(l, namespace, BodyKey)
	if err != nil {
		return Article{}, err
	}
	body, ok := raw.(string)
	if !ok {
		return Article{}, &i18n.KeyError{Locale: l, Namespace: namespace, Key: BodyKey, Err: i18n.ErrKeyType}
	}

	a, err := r.Render(body)
	if err != nil {
		return Article{}, fmt.Errorf("render %s:%s: %w", l, namespace, err)
	}
	r.store(key, a)
	return cloneArticle(a), nil
}

// Render converts Markdown to sanitized HTML and derives excerpt, word count,
// reading time and headings from the result.
func (r *Renderer) Render(markdown string) (Article, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return Article{}, fmt.Errorf("markdown: %w", err)
	}
	safe := strings.TrimSpace(r.policy.Sanitize(buf.String()))
	stats := inspect(safe)

	minutes := (stats.words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return Article{
		HTML:           template.HTML(safe),
		Excerpt:        truncate(stats.firstParagraph, excerptRunes),
		Words:          stats.words,
		ReadingMinutes: minutes,
		Headings:       stats.headings,
	}, nil
}

func (r *Renderer) cached(key string) (Article, bool) {
	if r.ttl <= 0 {
		return Article{}, false
	}
	r.mu.RLock()
	entry, ok := r.items[key]
	r.mu.RUnlock()
	if !ok || r.now().After(entry.expires) {
		return Article{}, false
	}
	return cloneArticle(entry.article), true
}

func (r *Renderer) store(key string, a Article) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	r.items[key] = cacheEntry{article: a, expires: r.now().Add(r.ttl)}
	r.mu.Unlock()
}

func cloneArticle(a Article) Article {
	a.Headings = append([]Heading(nil), a.Headings...)
	return a
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
