package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/cms"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/nav"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/pagination"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

// ErrUnknownKind reports a route whose kind has no page builder.
var ErrUnknownKind = errors.New("handlers: no page builder for route kind")

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Template string
	Status   int

	Locale locale.Locale
	Lang   string
	Dir    locale.Direction

	Canonical   routing.Canonical
	SEO         seo.Meta
	Nav         []nav.Link
	Breadcrumbs []nav.Crumb
	Languages   []nav.LangLink
	Site        Chrome

	// Page is the per-template payload (HomePage, ServicePage, ...).
	Page any
}

// Chrome is the copy shared by the header, footer and floating widgets.
type Chrome struct {
	Name          string
	Tagline       string
	HomeHref      string
	Logo          string
	LogoAlt       string
	SkipToContent string
	MenuLabel     string
	LanguageLabel string
	BookNow       string
	BookHref      string
	WhatsApp      string
	WhatsAppURL   string
	Call          string
	PhoneURL      string
	Phone         string
	Email         string
	Year          int
	Footer        Footer
	Location      Location
	Booking       Booking
}

type Footer struct {
	About         string
	LinksTitle    string
	ServicesTitle string
	ContactTitle  string
	FollowTitle   string
	Rights        string
	Services      []nav.Link
	Social        []string
}

// Location is the map and address widget rendered on every page.
type Location struct {
	Title      string
	Address    string
	HoursTitle string
	Hours      string
	Directions string
	CallUs     string
	MapURL     string
	MapEmbed   string
	MapTitle   string
}

// Booking is the call-to-action band above the footer.
type Booking struct {
	Title    string
	Subtitle string
	CTA      string
	Href     string
}

// Card is a linked tile used by service, article and team grids.
type Card struct {
	Href     string
	Title    string
	Summary  string
	Image    string
	ImageAlt string
	Icon     string
	Meta     string
	DateISO  string
}

// Options configures a Resolver.
type Options struct {
	Registry *routing.Registry
	Catalog  *i18n.Catalog
	Articles *cms.Renderer
	BaseURL  string
	PageSize int
	Now      func() time.Time
}

// Resolver builds PageData for dispatched requests. It is stateless apart
// from the article cache held by the cms renderer.
type Resolver struct {
	reg      *routing.Registry
	catalog  *i18n.Catalog
	articles *cms.Renderer
	base     string
	pageSize int
	now      func() time.Time
	builders map[routing.Kind]builder
}

type builder func(ctx context.Context, b *build) error

// NewResolver wires the page builders.
func NewResolver(opts Options) *Resolver {
	if opts.Registry == nil {
		opts.Registry = routing.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Articles == nil {
		opts.Articles = cms.NewRenderer(opts.Catalog)
	}
	r := &Resolver{
		reg:      opts.Registry,
		catalog:  opts.Catalog,
		articles: opts.Articles,
		base:     opts.BaseURL,
		pageSize: opts.PageSize,
		now:      opts.Now,
	}
	r.builders = map[routing.Kind]builder{
		routing.KindHome:        r.home,
		routing.KindServices:    r.services,
		routing.KindService:     r.service,
		routing.KindBlogs:       r.blogs,
		routing.KindBlog:        r.blog,
		routing.KindAbout:       r.about,
		routing.KindBeforeAfter: r.beforeAfter,
		routing.KindContact:     r.contact,
		routing.KindTeam:        r.team,
	}
	return r
}

// build carries the state of one page assembly. Every catalog read goes
// through scope so that missing keys surface together from finish.
type build struct {
	req    routing.ResolvedRequest
	scopes []*i18n.Scope
	data   PageData
	// meta inputs
	title       string
	description string
	image       string
	ogType      string
	noIndex     bool
	crumbTitle  string
	jsonld      []map[string]any
}

func (b *build) scope(r *Resolver, namespace string) *i18n.Scope {
	s := r.catalog.Scope(b.req.Locale, namespace)
	b.scopes = append(b.scopes, s)
	return s
}

func (b *build) err() error {
	var errs []error
	for _, s := range b.scopes {
		if err := s.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve builds the page for req. A missing translation key is returned as
// an error wrapping i18n.ErrMissingKey; nothing is rendered with blanks.
func (r *Resolver) Resolve(ctx context.Context, req routing.ResolvedRequest) (PageData, error) {
	if !req.Locale.Valid() {
		return PageData{}, fmt.Errorf("resolve %s: unsupported locale %q", req.Canonical, req.Locale)
	}
	if req.Kind == "" {
		entry, ok := r.reg.Entry(req.Canonical)
		if !ok {
			return PageData{}, fmt.Errorf("resolve %s: %w", req.Canonical, ErrUnknownKind)
		}
		req.Kind = entry.Kind
	}
	fn, ok := r.builders[req.Kind]
	if !ok {
		return PageData{}, fmt.Errorf("resolve %s (%s): %w", req.Canonical, req.Kind, ErrUnknownKind)
	}

	b := &build{req: req}
	b.data.Template = string(req.Kind)
	b.data.Status = http.StatusOK
	if err := fn(ctx, b); err != nil {
		return PageData{}, fmt.Errorf("build %s page %s: %w", req.Locale, req.Canonical, err)
	}
	r.finish(b)
	if err := b.err(); err != nil {
		return PageData{}, fmt.Errorf("build %s page %s: %w", req.Locale, req.Canonical, err)
	}
	return b.data, nil
}

// finish fills the layout: chrome, navigation, breadcrumbs and SEO.
func (r *Resolver) finish(b *build) {
	l := b.req.Locale
	c := b.req.Canonical
	navLabels := b.scope(r, "nav")

	b.data.Locale = l
	b.data.Lang = string(l)
	b.data.Dir = l.Dir()
	b.data.Canonical = c
	b.data.Site = r.chrome(b, navLabels)
	b.data.Nav = nav.Build(r.reg, l, c, navLabels)
	b.data.Languages = nav.LanguageSwitch(r.reg, l, c)
	if c != routing.Home && c != "" {
		b.data.Breadcrumbs = nav.Breadcrumbs(r.reg, l, c, navLabels, b.crumbTitle)
	}

	path := r.reg.Href(c, l)
	hrefs := r.reg.Alternates(c)
	if c == "" {
		path, hrefs = "", nil
	}
	image := b.image
	if image == "" {
		image = clinic.Details.Image
	}
	meta := seo.Build(seo.Page{
		Base:        r.base,
		Locale:      l,
		Path:        path,
		Hrefs:       hrefs,
		Title:       b.title,
		SiteName:    b.data.Site.Name,
		Description: b.description,
		Image:       image,
		Type:        b.ogType,
		NoIndex:     b.noIndex,
	})
	payloads := b.jsonld
	if len(b.data.Breadcrumbs) > 1 {
		payloads = append(payloads, seo.BreadcrumbList(nav.SchemaItems(r.base, b.data.Breadcrumbs)))
	}
	b.data.SEO = meta.WithJSONLD(payloads...)
}

func (r *Resolver) chrome(b *build, navLabels *i18n.Scope) Chrome {
	l := b.req.Locale
	site := b.scope(r, "site")
	footer := b.scope(r, "footer")
	loc := b.scope(r, "location")
	booking := b.scope(r, "booking")

	var services []nav.Link
	for _, s := range clinic.Services() {
		services = append(services, nav.Link{
			Href:   r.reg.Href(s.Canonical, l),
			Label:  r.catalog.Scope(l, s.Namespace).Optional("title"),
			Active: s.Canonical == b.req.Canonical,
		})
	}

	return Chrome{
		Name:          site.String("name"),
		Tagline:       site.String("tagline"),
		HomeHref:      r.reg.Href(routing.Home, l),
		Logo:          clinic.Details.Logo,
		LogoAlt:       site.String("logoAlt"),
		SkipToContent: site.String("skipToContent"),
		MenuLabel:     site.String("menu"),
		LanguageLabel: site.String("language"),
		BookNow:       site.String("bookNow"),
		BookHref:      r.reg.Href(routing.Contact, l),
		WhatsApp:      site.String("whatsapp"),
		WhatsAppURL:   clinic.Details.WhatsAppURL(),
		Call:          site.String("call"),
		PhoneURL:      clinic.Details.PhoneURL(),
		Phone:         clinic.Details.Phone,
		Email:         clinic.Details.Email,
		Year:          r.now().Year(),
		Footer: Footer{
			About:         footer.String("about"),
			LinksTitle:    footer.String("linksTitle"),
			ServicesTitle: footer.String("servicesTitle"),
			ContactTitle:  footer.String("contactTitle"),
			FollowTitle:   footer.String("followTitle"),
			Rights:        footer.String("rights"),
			Services:      services,
			Social:        clinic.Details.Social,
		},
		Location: Location{
			Title:      loc.String("title"),
			Address:    loc.String("address"),
			HoursTitle: loc.String("hoursTitle"),
			Hours:      loc.String("hours"),
			Directions: loc.String("directions"),
			CallUs:     loc.String("callUs"),
			MapURL:     clinic.Details.MapURL,
			MapEmbed:   clinic.Details.MapEmbed,
			MapTitle:   loc.String("mapTitle"),
		},
		Booking: Booking{
			Title:    booking.String("title"),
			Subtitle: booking.String("subtitle"),
			CTA:      booking.String("cta"),
			Href:     clinic.Details.WhatsAppURL(),
		},
	}
}

// NotFound builds the not-found page for l. It only needs the layout
// namespaces and "notFound"; a missing key there is still reported.
func (r *Resolver) NotFound(ctx context.Context, l locale.Locale) (PageData, error) {
	return r.status(ctx, l, "notFound", http.StatusNotFound)
}

// ServerError builds the 500 page for l.
func (r *Resolver) ServerError(ctx context.Context, l locale.Locale) (PageData, error) {
	return r.status(ctx, l, "serverError", http.StatusInternalServerError)
}

var statusLinks = []nav.Item{
	{Canonical: routing.Services, LabelKey: "services"},
	{Canonical: routing.Blogs, LabelKey: "blogs"},
	{Canonical: routing.Contact, LabelKey: "contact"},
}

// StatusPage is the payload of the not-found and error templates.
type StatusPage struct {
	Title    string
	Message  string
	Action   string
	HomeHref string
	Links    []nav.Link
}

func (r *Resolver) status(_ context.Context, l locale.Locale, namespace string, code int) (PageData, error) {
	if !l.Valid() {
		l = locale.Default
	}
	b := &build{req: routing.ResolvedRequest{Locale: l}}
	s := b.scope(r, namespace)
	page := StatusPage{
		Title:    s.String("title"),
		Message:  s.String("message"),
		Action:   s.String("action"),
		HomeHref: r.reg.Href(routing.Home, l),
	}
	navLabels := b.scope(r, "nav")
	for _, it := range statusLinks {
		page.Links = append(page.Links, nav.Link{Href: r.reg.Href(it.Canonical, l), Label: navLabels.String(it.LabelKey)})
	}

	b.title = page.Title
	b.description = page.Message
	b.noIndex = true
	b.data.Template = "status"
	b.data.Status = code
	b.data.Page = page
	r.finish(b)
	if err := b.err(); err != nil {
		return b.data, fmt.Errorf("build %s %s page: %w", l, namespace, err)
	}
	return b.data, nil
}
