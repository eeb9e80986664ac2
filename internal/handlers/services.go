package handlers

import (
	"context"
	"fmt"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

const relatedCount = 3

// ServicesPage lists every treatment.
type ServicesPage struct {
	Heading string
	Intro   string
	Cards   []Card
	CTA     string
	CTAHref string
}

// ServicePage is one treatment's detail page.
type ServicePage struct {
	Title    string
	Summary  string
	Intro    string
	Image    string
	ImageAlt string
	Benefits []string
	Steps    []Feature
	FAQ      []QA
	Labels   ServiceLabels
	BookHref string
	Related  []Card
	Articles []Card
}

type QA struct {
	Question string
	Answer   string
}

// ServiceLabels are the section headings shared by every service page.
type ServiceLabels struct {
	Benefits string
	Steps    string
	FAQ      string
	Related  string
	Articles string
	Book     string
}

func (r *Resolver) services(_ context.Context, b *build) error {
	l := b.req.Locale
	text := b.scope(r, "servicesPage")
	page := ServicesPage{
		Heading: text.String("heading"),
		Intro:   text.String("intro"),
		Cards:   r.serviceCards(b, clinic.Services()),
		CTA:     text.String("cta"),
		CTAHref: r.reg.Href(routing.Contact, l),
	}

	b.title = text.String("title")
	b.description = text.String("description")
	b.data.Page = page
	b.jsonld = append(b.jsonld, seo.ItemList(page.Heading, r.listEntries(page.Cards)))
	return nil
}

func (r *Resolver) service(ctx context.Context, b *build) error {
	l := b.req.Locale
	svc, ok := clinic.ServiceByCanonical(b.req.Canonical)
	if !ok {
		return fmt.Errorf("service %s: %w", b.req.Canonical, ErrUnknownKind)
	}
	text := b.scope(r, svc.Namespace)
	labels := b.scope(r, "servicesPage").Sub("detail")

	page := ServicePage{
		Title:    text.String("title"),
		Summary:  text.String("summary"),
		Intro:    text.String("intro"),
		Image:    svc.Image,
		ImageAlt: text.String("imageAlt"),
		Benefits: text.Strings("benefits"),
		BookHref: clinic.Details.WhatsAppURL(),
		Labels: ServiceLabels{
			Benefits: labels.String("benefits"),
			Steps:    labels.String("steps"),
			FAQ:      labels.String("faq"),
			Related:  labels.String("related"),
			Articles: labels.String("articles"),
			Book:     labels.String("book"),
		},
	}
	for _, s := range text.Each("steps") {
		page.Steps = append(page.Steps, Feature{Title: s.String("title"), Text: s.String("text")})
	}
	for _, q := range text.Each("faq") {
		page.FAQ = append(page.FAQ, QA{Question: q.String("q"), Answer: q.String("a")})
	}

	var others []clinic.Service
	for _, s := range clinic.Services() {
		if s.Key != svc.Key && len(others) < relatedCount {
			others = append(others, s)
		}
	}
	page.Related = r.serviceCards(b, others)

	var posts []clinic.Post
	for _, p := range clinic.Posts() {
		if p.Service == svc.Key && len(posts) < relatedCount {
			posts = append(posts, p)
		}
	}
	cards, err := r.postCards(ctx, b, posts)
	if err != nil {
		return err
	}
	page.Articles = cards

	b.title = page.Title
	b.description = text.String("description")
	b.image = svc.Image
	b.crumbTitle = page.Title
	b.data.Page = page

	url := seo.Absolute(r.base, r.reg.Href(svc.Canonical, l))
	site := b.scope(r, "site")
	b.jsonld = append(b.jsonld,
		seo.Service(seo.Offer{
			Name:        page.Title,
			Description: page.Summary,
			URL:         url,
			Image:       seo.Absolute(r.base, svc.Image),
			Provider:    site.String("name"),
			ProviderURL: seo.Absolute(r.base, r.reg.Href(routing.Home, l)),
			AreaServed:  b.scope(r, "location").String("city"),
		}),
		seo.MedicalWebPage(page.Title, b.description, url, page.Title, l.Profile().Tag.String()),
	)
	return nil
}
