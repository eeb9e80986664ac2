package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/pagination"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
)

const testBase = "https://clinic.example"

func shippedResolver(t *testing.T) *Resolver {
	t.Helper()
	catalog, err := i18n.Load("../../locales", locale.Supported(), clinic.LocationFallbacks)
	require.NoError(t, err)
	return NewResolver(Options{
		Catalog: catalog,
		BaseURL: testBase,
		Now:     func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) },
	})
}

func TestResolveEveryRouteInEveryLocale(t *testing.T) {
	t.Parallel()

	r := shippedResolver(t)
	reg := routing.Default()
	for _, entry := range reg.Entries() {
		for _, l := range locale.Supported() {
			entry, l := entry, l
			t.Run(string(l)+string(entry.Canonical), func(t *testing.T) {
				data, err := r.Resolve(context.Background(), routing.ResolvedRequest{Locale: l, Canonical: entry.Canonical})
				require.NoError(t, err)
				require.Equal(t, http.StatusOK, data.Status)
				require.Equal(t, string(entry.Kind), data.Template)
				require.Equal(t, l.Dir(), data.Dir)
				require.NotEmpty(t, data.SEO.Title)
				require.NotEmpty(t, data.SEO.Description)
				require.Equal(t, testBase+reg.Href(entry.Canonical, l), data.SEO.Canonical)
				require.Len(t, data.SEO.Alternates, len(locale.Supported())+1)
				require.NotEmpty(t, data.SEO.JSONLD)
				for _, js := range data.SEO.JSONLD {
					require.True(t, json.Valid([]byte(js)), string(js))
				}
				require.Len(t, data.Languages, len(locale.Supported()))
				require.NotNil(t, data.Page)
			})
		}
	}
}

func TestResolveHomeWidgets(t *testing.T) {
	t.Parallel()

	data, err := shippedResolver(t).Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.AR, Canonical: routing.Home})
	require.NoError(t, err)
	page, ok := data.Page.(HomePage)
	require.True(t, ok)
	require.NotEmpty(t, page.Marquee.Items)
	require.Zero(t, len(page.Marquee.Items)%2)
	half := len(page.Marquee.Items) / 2
	require.Equal(t, page.Marquee.Items[:half], page.Marquee.Items[half:])
	require.Len(t, page.Blogs.Cards, homePostCount)
	require.Equal(t, "/ar/ابتسامة-هوليوود-كل-ما-تريد-معرفته/مقالاتنا", page.Blogs.Cards[0].Href)
	require.Empty(t, data.Breadcrumbs)
	require.Equal(t, 2025, data.Site.Year)
	require.Contains(t, string(data.SEO.JSONLD[0]), `"DentalClinic"`)
}

func TestResolveNavigationActiveSection(t *testing.T) {
	t.Parallel()

	reg := routing.Default()
	post := clinic.Posts()[0]
	data, err := shippedResolver(t).Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.EN, Canonical: post.Canonical})
	require.NoError(t, err)

	var active []string
	for _, link := range data.Nav {
		if link.Active {
			active = append(active, link.Href)
		}
	}
	require.Equal(t, []string{reg.Href(routing.Blogs, locale.EN)}, active)
	require.Len(t, data.Breadcrumbs, 3)
	require.Equal(t, reg.Href(routing.Blogs, locale.EN), data.Breadcrumbs[1].Href)
	require.True(t, data.Breadcrumbs[2].Active)
	require.Equal(t, "article", data.SEO.OG.Type)

	page := data.Page.(BlogPage)
	require.NotEmpty(t, page.Article.HTML)
	require.NotEmpty(t, page.Author.Name)
	require.Len(t, page.Related, relatedCount)
}

func TestResolveBlogPagination(t *testing.T) {
	t.Parallel()

	r := shippedResolver(t)
	total := len(clinic.Posts())
	pages := (total + pagination.DefaultPageSize - 1) / pagination.DefaultPageSize

	resolve := func(page string) (PageData, BlogsPage) {
		data, err := r.Resolve(context.Background(), routing.ResolvedRequest{
			Locale:    locale.EN,
			Canonical: routing.Blogs,
			Params:    map[string]string{pagination.Param: page},
		})
		require.NoError(t, err)
		return data, data.Page.(BlogsPage)
	}

	data, first := resolve("")
	require.Len(t, first.Cards, pagination.DefaultPageSize)
	require.True(t, first.Pagination.Show)
	require.Empty(t, first.Pagination.PrevHref)
	require.Equal(t, "/en/blog?page=2", first.Pagination.NextHref)
	require.Equal(t, "index, follow", data.SEO.Robots)

	_, last := resolve("2")
	require.Len(t, last.Cards, total-pagination.DefaultPageSize)
	require.Equal(t, "/en/blog", last.Pagination.PrevHref)

	data, beyond := resolve("99")
	require.Empty(t, beyond.Cards)
	require.Len(t, beyond.Pagination.Pages, pages)
	require.Equal(t, "noindex, follow", data.SEO.Robots)

	_, garbage := resolve("abc")
	require.Len(t, garbage.Cards, pagination.DefaultPageSize)
}

func TestResolveServiceAndTeam(t *testing.T) {
	t.Parallel()

	r := shippedResolver(t)
	svc := clinic.Services()[0]
	data, err := r.Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.AR, Canonical: svc.Canonical})
	require.NoError(t, err)
	page := data.Page.(ServicePage)
	require.NotEmpty(t, page.Benefits)
	require.NotEmpty(t, page.Steps)
	require.NotEmpty(t, page.FAQ)
	require.Len(t, page.Related, relatedCount)
	for _, c := range page.Related {
		require.NotEqual(t, routing.Default().Href(svc.Canonical, locale.AR), c.Href)
	}

	data, err = r.Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.EN, Canonical: routing.Team})
	require.NoError(t, err)
	team := data.Page.(TeamPage)
	require.Len(t, team.Members, len(clinic.Team()))
	persons := 0
	for _, js := range data.SEO.JSONLD {
		if strings.Contains(string(js), `"Person"`) {
			persons++
		}
	}
	require.Equal(t, len(clinic.Team()), persons)
}

func TestResolveUsesLocationFallbacks(t *testing.T) {
	t.Parallel()

	data, err := shippedResolver(t).Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.EN, Canonical: routing.Contact})
	require.NoError(t, err)
	require.Equal(t, clinic.LocationFallbacks[locale.EN]["location.hours"], data.Site.Location.Hours)
	require.Equal(t, clinic.Details.MapEmbed, data.Site.Location.MapEmbed)
}

func TestResolveMissingKeysFail(t *testing.T) {
	t.Parallel()

	catalog, err := i18n.LoadFS(fstest.MapFS{
		"ar.yaml": {Data: []byte("site:\n  name: عيادة\n")},
		"en.yaml": {Data: []byte("site:\n  name: Clinic\n")},
	}, locale.Supported(), nil)
	require.NoError(t, err)
	r := NewResolver(Options{Catalog: catalog, BaseURL: testBase})

	_, err = r.Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.EN, Canonical: routing.About})
	require.Error(t, err)
	require.ErrorIs(t, err, i18n.ErrMissingKey)
	var keyErr *i18n.KeyError
	require.True(t, errors.As(err, &keyErr))

	_, err = r.Resolve(context.Background(), routing.ResolvedRequest{Locale: locale.EN, Canonical: "/nope"})
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = r.Resolve(context.Background(), routing.ResolvedRequest{Locale: "fr", Canonical: routing.Home})
	require.Error(t, err)
}

func TestStatusPages(t *testing.T) {
	t.Parallel()

	r := shippedResolver(t)
	for _, l := range locale.Supported() {
		data, err := r.NotFound(context.Background(), l)
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, data.Status)
		require.Equal(t, "status", data.Template)
		require.Equal(t, "noindex, follow", data.SEO.Robots)
		require.Empty(t, data.SEO.Alternates)
		page := data.Page.(StatusPage)
		require.Equal(t, "/"+string(l), page.HomeHref)
		require.Len(t, page.Links, len(statusLinks))

		data, err = r.ServerError(context.Background(), l)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, data.Status)
	}

	data, err := r.NotFound(context.Background(), "xx")
	require.NoError(t, err)
	require.Equal(t, locale.Default, data.Locale)
}
