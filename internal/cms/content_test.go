package cms

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

const sampleBody = `Veneers are thin shells bonded to the front of the tooth.

## Who needs them

Chipped or discoloured teeth.

### Cost

| Type | Price |
|------|-------|
| Emax | high  |

<script>alert(1)</script>
[site](https://example.com)
`

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("blog-veneers:\n  title: Veneers\n  body: |\n    " +
			strings.ReplaceAll(sampleBody, "\n", "\n    ") + "\nblog-bad:\n  body: [1, 2]\n")},
	}
	c, err := i18n.LoadFS(fsys, []locale.Locale{locale.EN}, nil)
	require.NoError(t, err)
	return NewRenderer(c, opts...)
}

func TestRenderSanitizesAndInspects(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	a, err := r.Render(sampleBody)
	require.NoError(t, err)

	out := string(a.HTML)
	require.Contains(t, out, "<table>")
	require.Contains(t, out, `rel="nofollow"`)
	require.NotContains(t, out, "<script>")
	require.Equal(t, "Veneers are thin shells bonded to the front of the tooth.", a.Excerpt)
	require.Len(t, a.Headings, 2)
	require.Equal(t, Heading{Level: 2, ID: "who-needs-them", Text: "Who needs them"}, a.Headings[0])
	require.Equal(t, 3, a.Headings[1].Level)
	require.Equal(t, 1, a.ReadingMinutes)
	require.Greater(t, a.Words, 15)
}

func TestExcerptTruncatesOnWordBoundary(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	a, err := r.Render(strings.Repeat("word ", 100))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(a.Excerpt, "…"))
	require.LessOrEqual(t, len([]rune(a.Excerpt)), excerptRunes+1)
	require.Equal(t, 100, a.Words)
}

func TestArticleFromCatalogIsCached(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newTestRenderer(t, WithCacheTTL(time.Minute), WithClock(func() time.Time { return now }))

	a, err := r.Article(context.Background(), locale.EN, "blog-veneers")
	require.NoError(t, err)
	require.Contains(t, string(a.HTML), "<h2")

	_, ok := r.cached("en|blog-veneers")
	require.True(t, ok)

	a.Headings[0].Text = "mutated"
	again, err := r.Article(context.Background(), locale.EN, "blog-veneers")
	require.NoError(t, err)
	require.Equal(t, "Who needs them", again.Headings[0].Text)

	now = now.Add(2 * time.Minute)
	_, ok = r.cached("en|blog-veneers")
	require.False(t, ok)
}

func TestArticleErrors(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, WithCacheTTL(0))

	_, err := r.Article(context.Background(), locale.EN, "blog-missing")
	require.ErrorIs(t, err, i18n.ErrMissingKey)

	_, err = r.Article(context.Background(), locale.EN, "blog-bad")
	require.ErrorIs(t, err, i18n.ErrKeyType)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Article(ctx, locale.EN, "blog-veneers")
	require.True(t, errors.Is(err, context.Canceled))
}
