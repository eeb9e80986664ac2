package routing

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

type recordingPages struct {
	page     *ResolvedRequest
	fromCtx  bool
	notFound locale.Locale
}

func (p *recordingPages) ServePage(w http.ResponseWriter, r *http.Request, req ResolvedRequest) {
	p.page = &req
	_, p.fromCtx = FromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func (p *recordingPages) ServeNotFound(w http.ResponseWriter, r *http.Request, l locale.Locale) {
	p.notFound = l
	w.WriteHeader(http.StatusNotFound)
}

func newTestDispatcher() (*Dispatcher, *recordingPages) {
	pages := &recordingPages{}
	return NewDispatcher(Default(), locale.NewResolver(locale.Default), pages, "page"), pages
}

func TestRootAlwaysRedirectsToDefaultLocale(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	signals := []locale.Signal{
		{},
		{AcceptLanguage: "en-US,en;q=0.9"},
		{Cookie: "en"},
	}
	for _, s := range signals {
		out := d.Resolve("/", s)
		require.Equal(t, ActionRedirect, out.Action)
		require.Equal(t, "/ar", out.Location)
		require.Equal(t, http.StatusTemporaryRedirect, out.Status)
	}

	// The registry has a "/" entry; the root rule still wins.
	_, ok := Default().CanonicalFor(locale.AR, "/")
	require.True(t, ok)
}

func TestRootRedirectOverHTTP(t *testing.T) {
	t.Parallel()

	d, pages := newTestDispatcher()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/ar", rec.Header().Get("Location"))
	require.Nil(t, pages.page)
}

func TestPrefixedSlugRenders(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()

	out := d.Resolve("/ar", locale.Signal{})
	require.Equal(t, Outcome{Action: ActionRender, Locale: locale.AR, Canonical: Home}, out)

	out = d.Resolve("/en/our-services/dental-implants", locale.Signal{AcceptLanguage: "ar"})
	require.Equal(t, ActionRender, out.Action)
	require.Equal(t, locale.EN, out.Locale)
	require.Equal(t, Canonical("/services/implant"), out.Canonical)

	out = d.Resolve("/ar/زراعة-الأسنان/خدماتنا/", locale.Signal{})
	require.Equal(t, ActionRender, out.Action)
	require.Equal(t, Canonical("/services/implant"), out.Canonical)
}

func TestPercentEncodedArabicPath(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	encoded := (&url.URL{Path: "/ar/أفضل-دكتور-اسنان-قريب-منك-في-المعادي/مقالاتنا"}).EscapedPath()
	require.Contains(t, encoded, "%")

	out := d.Resolve(encoded, locale.Signal{})
	require.Equal(t, ActionRender, out.Action)
	require.Equal(t, Canonical("/blogs/best-dentist-maadi"), out.Canonical)
}

func TestUnknownPathUnderLocaleIsNotFound(t *testing.T) {
	t.Parallel()

	d, pages := newTestDispatcher()
	out := d.Resolve("/en/does-not-exist", locale.Signal{})
	require.Equal(t, ActionNotFound, out.Action)
	require.Equal(t, locale.EN, out.Locale)

	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en/does-not-exist", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, locale.EN, pages.notFound)
}

func TestCanonicalKeyRedirectsToLocalizedSlug(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	out := d.Resolve("/en/services/implant", locale.Signal{})
	require.Equal(t, ActionRedirect, out.Action)
	require.Equal(t, http.StatusPermanentRedirect, out.Status)
	require.Equal(t, "/en/our-services/dental-implants", out.Location)
}

func TestOtherLocaleSlugRedirectsWithinLocale(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	out := d.Resolve("/en/من-نحن", locale.Signal{})
	require.Equal(t, ActionRedirect, out.Action)
	require.Equal(t, "/en/about-us", out.Location)

	out = d.Resolve("/ar/contact-us", locale.Signal{})
	require.Equal(t, ActionRedirect, out.Action)
	require.Equal(t, "/ar/تواصل-معنا", out.Location)
}

func TestMissingPrefixUsesNegotiation(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()

	out := d.Resolve("/فريقنا", locale.Signal{})
	require.Equal(t, ActionRedirect, out.Action)
	require.Equal(t, "/ar/فريقنا", out.Location)
	require.True(t, out.Negotiated)

	// English slug with no signal falls through to the locale that owns it.
	out = d.Resolve("/our-team", locale.Signal{})
	require.Equal(t, "/en/our-team", out.Location)

	// Canonical keys take the negotiated locale.
	out = d.Resolve("/team", locale.Signal{AcceptLanguage: "en-GB"})
	require.Equal(t, "/en/our-team", out.Location)

	out = d.Resolve("/nothing-here", locale.Signal{Cookie: "en"})
	require.Equal(t, ActionNotFound, out.Action)
	require.Equal(t, locale.EN, out.Locale)
}

func TestRedirectPreservesQueryAndEncodesPath(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	req := httptest.NewRequest(http.MethodGet, "/blog?page=2", nil)
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/en/blog?page=2", rec.Header().Get("Location"))
	require.Contains(t, rec.Header().Values("Vary"), "Accept-Language, Cookie")

	req = httptest.NewRequest(http.MethodGet, "/en/services/implant", nil)
	req.Header.Set("Accept-Language", "ar")
	rec = httptest.NewRecorder()
	d.ServeHTTP(rec, req)
	require.Equal(t, http.StatusPermanentRedirect, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/ar/services/implant", nil)
	rec = httptest.NewRecorder()
	d.ServeHTTP(rec, req)
	loc, err := url.PathUnescape(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/ar/زراعة-الأسنان/خدماتنا", loc)
}

func TestServeHTTPForwardsResolvedRequest(t *testing.T) {
	t.Parallel()

	d, pages := newTestDispatcher()
	req := httptest.NewRequest(http.MethodGet, "/en/blog?page=2&utm=x", nil)
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, pages.page)
	require.True(t, pages.fromCtx)
	require.Equal(t, locale.EN, pages.page.Locale)
	require.Equal(t, Blogs, pages.page.Canonical)
	require.Equal(t, KindBlogs, pages.page.Kind)
	require.Equal(t, map[string]string{"page": "2"}, pages.page.Params)
	require.Equal(t, "2", pages.page.Param("page"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, locale.CookieName, cookies[0].Name)
	require.Equal(t, "en", cookies[0].Value)
}

func TestServeHTTPRejectsUnsafeMethods(t *testing.T) {
	t.Parallel()

	d, pages := newTestDispatcher()
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/en", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	require.Nil(t, pages.page)
}

func TestResolveNeverPanicsOnOddInput(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher()
	for _, p := range []string{"", "//", "/en//", "/../..", "%zz", "/en/%E0%A4%A", "/ar/../en"} {
		require.NotPanics(t, func() { d.Resolve(p, locale.Signal{}) }, p)
	}
	require.Equal(t, ActionRedirect, d.Resolve("//", locale.Signal{}).Action)
	require.Equal(t, ActionRender, d.Resolve("/ar/../en", locale.Signal{}).Action)
}
