package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/handlers"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/testutil"
)

func encodePath(p string) string {
	return (&url.URL{Path: p}).String()
}

func serve(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, p string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, h, http.MethodGet, encodePath(p), nil)
}

func hrefPath(t *testing.T, s *goquery.Selection) string {
	t.Helper()
	href, ok := s.Attr("href")
	require.True(t, ok)
	decoded, err := url.PathUnescape(href)
	require.NoError(t, err)
	return decoded
}

func TestRootRedirectsToDefaultLocale(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	header := http.Header{"Accept-Language": {"en-US,en;q=0.9"}}
	rec := serve(t, h, http.MethodGet, "/", header)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/ar", rec.Header().Get("Location"))
}

func TestEveryRouteRendersInEveryLocale(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	reg := routing.Default()
	for _, entry := range reg.Entries() {
		for _, l := range locale.Supported() {
			entry, l := entry, l
			href := reg.Href(entry.Canonical, l)
			t.Run(href, func(t *testing.T) {
				t.Parallel()

				rec := get(t, h, href)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
				require.Equal(t, string(l), rec.Header().Get("Content-Language"))

				doc := testutil.ParseHTML(t, rec.Body.Bytes())
				html := doc.Find("html")
				require.Equal(t, string(l), html.AttrOr("lang", ""))
				require.Equal(t, string(l.Dir()), html.AttrOr("dir", ""))
				require.NotEmpty(t, strings.TrimSpace(doc.Find("title").Text()))
				require.NotEmpty(t, doc.Find(`meta[name="description"]`).AttrOr("content", ""))
				require.Equal(t, "index, follow", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
				require.Equal(t, seo.Absolute(testutil.BaseURL, href), doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))

				alternates := doc.Find(`link[rel="alternate"][hreflang]`)
				require.Equal(t, len(locale.Supported())+1, alternates.Length())
				require.Equal(t, 1, doc.Find(`link[hreflang="x-default"]`).Length())

				scripts := doc.Find(`script[type="application/ld+json"]`)
				require.Positive(t, scripts.Length())
				scripts.Each(func(_ int, s *goquery.Selection) {
					require.True(t, json.Valid([]byte(s.Text())), s.Text())
				})

				require.Equal(t, 1, doc.Find("h1").Length())
				require.Equal(t, 1, doc.Find("iframe").Length())
				require.Equal(t, 1, doc.Find(".floating-actions__whatsapp").Length())
			})
		}
	}
}

func TestNavigationMarksCurrentSection(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := get(t, h, "/en/our-services/dental-implants")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	active := doc.Find(`.site-nav a[aria-current="page"]`)
	require.Equal(t, 1, active.Length())
	require.Equal(t, "/en/our-services", hrefPath(t, active))

	crumbs := doc.Find(".breadcrumbs li")
	require.Equal(t, 3, crumbs.Length())
	require.Equal(t, "Dental implants", strings.TrimSpace(crumbs.Last().Text()))

	other := doc.Find(`.lang-switch a[hreflang="ar"]`)
	require.Equal(t, "/ar/زراعة-الأسنان/خدماتنا", hrefPath(t, other))
}

func TestUnknownPathRendersLocalizedNotFound(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	cases := []struct {
		path  string
		lang  string
		dir   string
		title string
	}{
		{path: "/en/does-not-exist", lang: "en", dir: "ltr", title: "Page not found"},
		{path: "/ar/غير-موجودة", lang: "ar", dir: "rtl", title: "الصفحة غير موجودة"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.lang, func(t *testing.T) {
			t.Parallel()

			rec := get(t, h, tc.path)
			require.Equal(t, http.StatusNotFound, rec.Code)
			require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			doc := testutil.ParseHTML(t, rec.Body.Bytes())
			require.Equal(t, tc.lang, doc.Find("html").AttrOr("lang", ""))
			require.Equal(t, tc.dir, doc.Find("html").AttrOr("dir", ""))
			require.Equal(t, tc.title, strings.TrimSpace(doc.Find("h1").Text()))
			require.Contains(t, doc.Find(`meta[name="robots"]`).AttrOr("content", ""), "noindex")
			require.Equal(t, "/"+tc.lang, hrefPath(t, doc.Find(".status .btn")))
		})
	}
}

func TestLocalelessPathsNegotiate(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	cases := []struct {
		name     string
		path     string
		header   http.Header
		location string
	}{
		{
			name:     "accept language",
			path:     "/about",
			header:   http.Header{"Accept-Language": {"en-GB,en;q=0.8,ar;q=0.5"}},
			location: "/en/about-us",
		},
		{
			name:     "cookie beats header",
			path:     "/about",
			header:   http.Header{"Accept-Language": {"en"}, "Cookie": {locale.CookieName + "=ar"}},
			location: encodePath("/ar/من-نحن"),
		},
		{
			name:     "no signal",
			path:     "/contact",
			location: encodePath("/ar/تواصل-معنا"),
		},
		{
			name:     "public slug keeps query",
			path:     "/blog?page=2",
			header:   http.Header{"Accept-Language": {"en"}},
			location: "/en/blog?page=2",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, h, http.MethodGet, tc.path, tc.header)
			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			require.Equal(t, tc.location, rec.Header().Get("Location"))
			require.Contains(t, rec.Header().Values("Vary"), "Accept-Language, Cookie")
		})
	}
}

func TestForeignSlugRedirectsPermanently(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := get(t, h, "/en/من-نحن")
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
	require.Equal(t, "/en/about-us", rec.Header().Get("Location"))

	rec = get(t, h, "/ar/about-us")
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
	require.Equal(t, encodePath("/ar/من-نحن"), rec.Header().Get("Location"))

	rec = get(t, h, "/en/services/implant")
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)
	require.Equal(t, "/en/our-services/dental-implants", rec.Header().Get("Location"))
}

func TestRenderSetsLanguageCookie(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := get(t, h, "/en")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, locale.CookieName, cookies[0].Name)
	require.Equal(t, "en", cookies[0].Value)

	header := http.Header{"Cookie": {locale.CookieName + "=en"}}
	rec = serve(t, h, http.MethodGet, "/en", header)
	require.Empty(t, rec.Result().Cookies())
}

func TestNonGetMethodsAreRejected(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := serve(t, h, http.MethodPost, "/en", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))

	rec = serve(t, h, http.MethodHead, "/en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBlogListingPaginates(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	total := len(clinic.Posts())

	rec := serve(t, h, http.MethodGet, "/en/blog?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, total-9, doc.Find(".card-grid .card").Length())
	require.Equal(t, "/en/blog", hrefPath(t, doc.Find(`[data-pagination] a[rel="prev"]`)))
	require.Zero(t, doc.Find(`[data-pagination] a[rel="next"]`).Length())
	require.Equal(t, testutil.BaseURL+"/en/blog", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))

	rec = serve(t, h, http.MethodGet, "/en/blog?page=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	require.Zero(t, doc.Find(".card-grid .card").Length())
	require.Equal(t, "There are no articles on this page.", strings.TrimSpace(doc.Find(".empty-state").Text()))
	require.Contains(t, doc.Find(`meta[name="robots"]`).AttrOr("content", ""), "noindex")
}

func TestInteractiveWidgetsRender(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)

	doc := testutil.ParseHTML(t, get(t, h, "/ar").Body.Bytes())
	require.Equal(t, 1, doc.Find("[data-marquee]").Length())
	video := doc.Find("video[data-autoplay-when-visible]")
	require.Equal(t, 1, video.Length())
	_, muted := video.Attr("muted")
	require.True(t, muted)

	doc = testutil.ParseHTML(t, get(t, h, "/en/before-after").Body.Bytes())
	require.Equal(t, len(clinic.Cases()), doc.Find("[data-compare]").Length())
	require.Equal(t, len(clinic.Cases()), doc.Find("input[data-compare-range]").Length())

	doc = testutil.ParseHTML(t, get(t, h, "/en/team").Body.Bytes())
	require.Equal(t, len(clinic.Team()), doc.Find("[data-team-grid] .team-card").Length())
}

func TestSitemapListsEveryLocalizedURL(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := get(t, h, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	reg := routing.Default()
	require.Equal(t, len(reg.Entries())*len(reg.Locales()), strings.Count(body, "<url>"))
	require.Contains(t, body, "<loc>"+testutil.BaseURL+"/ar</loc>")
	require.Contains(t, body, "<loc>"+testutil.BaseURL+"/en/blog</loc>")
	require.Contains(t, body, `hreflang="x-default"`)
	require.Contains(t, body, "<lastmod>")
}

func TestRobotsPointsAtSitemap(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := get(t, h, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sitemap: "+testutil.BaseURL+"/sitemap.xml")
	require.Contains(t, rec.Body.String(), "Disallow: /healthz")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := get(t, testutil.Handler(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestAssetsCarryETag(t *testing.T) {
	t.Parallel()

	h := testutil.Handler(t)
	rec := get(t, h, "/assets/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = serve(t, h, http.MethodGet, "/assets/css/site.css", http.Header{"If-None-Match": {etag}})
	require.Equal(t, http.StatusNotModified, rec.Code)

	doc := testutil.ParseHTML(t, get(t, h, "/en").Body.Bytes())
	stylesheet := doc.Find(`link[rel="stylesheet"]`).AttrOr("href", "")
	require.True(t, strings.HasPrefix(stylesheet, "/assets/css/site.css?v="), stylesheet)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	rec := get(t, testutil.Handler(t), "/en")
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Contains(t, rec.Header().Get("Content-Security-Policy"), "frame-src https://www.google.com")
}

func TestContentErrorRendersServerErrorPage(t *testing.T) {
	t.Parallel()

	catalog, err := i18n.LoadFS(fstest.MapFS{
		"ar.yaml": {Data: []byte("site:\n  name: عيادة\n")},
		"en.yaml": {Data: []byte("site:\n  name: Clinic\n")},
	}, locale.Supported(), nil)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	h := testutil.Handler(t,
		testutil.WithLogger(zap.New(core)),
		testutil.WithPages(handlers.NewResolver(handlers.Options{Catalog: catalog, BaseURL: testutil.BaseURL})),
	)

	rec := get(t, h, "/en/about-us")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.NotEmpty(t, logs.FilterMessage("build page failed").All())
}
