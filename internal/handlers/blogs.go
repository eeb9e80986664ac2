package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/cms"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/format"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/pagination"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

// BlogsPage is one page of the article listing.
type BlogsPage struct {
	Heading    string
	Intro      string
	Cards      []Card
	Empty      string
	Pagination Pager
}

// Pager is the rendered pagination control. It is omitted when there is a
// single page.
type Pager struct {
	Show     bool
	Summary  string
	PrevHref string
	PrevText string
	NextHref string
	NextText string
	Pages    []PageLink
}

type PageLink struct {
	Number  string
	Href    string
	Current bool
}

// BlogPage is a single article.
type BlogPage struct {
	Title       string
	Description string
	Image       string
	ImageAlt    string
	Published   string
	DateISO     string
	ReadingTime string
	Article     cms.Article
	Author      Author
	Labels      BlogLabels
	Service     *Card
	Related     []Card
}

type Author struct {
	Name  string
	Role  string
	Photo string
	Href  string
}

type BlogLabels struct {
	By       string
	Contents string
	Related  string
	Service  string
	Back     string
	BackHref string
	Share    string
}

func (r *Resolver) blogs(ctx context.Context, b *build) error {
	l := b.req.Locale
	text := b.scope(r, "blogsPage")

	number := pagination.ParseString(b.req.Param(pagination.Param))
	posts, pg := pagination.Slice(clinic.Posts(), number, r.pageSize)
	cards, err := r.postCards(ctx, b, posts)
	if err != nil {
		return err
	}

	page := BlogsPage{
		Heading: text.String("heading"),
		Intro:   text.String("intro"),
		Cards:   cards,
		Empty:   text.String("empty"),
	}
	page.Pagination = r.pager(b, text, pg)

	b.title = text.String("title")
	b.description = text.String("description")
	if pg.Number > 1 {
		b.title = text.Format("pagedTitle", b.title, format.Number(int64(pg.Number), l))
	}
	// Pages past the end render the empty state but stay out of the index.
	b.noIndex = pg.Empty()
	b.data.Page = page
	b.jsonld = append(b.jsonld, seo.ItemList(page.Heading, r.listEntries(cards)))
	return nil
}

func (r *Resolver) pager(b *build, text *i18n.Scope, pg pagination.Page) Pager {
	if pg.TotalPages <= 1 {
		return Pager{}
	}
	l := b.req.Locale
	href := func(n int) string {
		base := r.reg.Href(routing.Blogs, l)
		if n <= 1 {
			return base
		}
		return base + "?" + pagination.Param + "=" + strconv.Itoa(n)
	}
	summary := text.Format("pageOf", format.Number(int64(pg.Number), l), format.Number(int64(pg.TotalPages), l))
	out := Pager{
		Show:     true,
		Summary:  summary,
		PrevText: text.String("prev"),
		NextText: text.String("next"),
	}
	if pg.HasPrev {
		out.PrevHref = href(pg.Prev())
	}
	if pg.HasNext {
		out.NextHref = href(pg.Next())
	}
	for _, n := range pg.Numbers {
		out.Pages = append(out.Pages, PageLink{
			Number:  format.Number(int64(n), l),
			Href:    href(n),
			Current: n == pg.Number,
		})
	}
	return out
}

func (r *Resolver) blog(ctx context.Context, b *build) error {
	l := b.req.Locale
	post, ok := clinic.PostByCanonical(b.req.Canonical)
	if !ok {
		return fmt.Errorf("blog %s: %w", b.req.Canonical, ErrUnknownKind)
	}
	text := b.scope(r, post.Namespace)
	labels := b.scope(r, "blogsPage").Sub("detail")

	article, err := r.articles.Article(ctx, l, post.Namespace)
	if err != nil {
		return fmt.Errorf("article %s: %w", post.Key, err)
	}

	page := BlogPage{
		Title:       text.String("title"),
		Description: text.String("description"),
		Image:       post.Image,
		ImageAlt:    text.String("imageAlt"),
		Published:   format.Date(post.Published, l),
		DateISO:     format.ISODate(post.Published),
		ReadingTime: b.scope(r, "blogsPage").Format("readingTime", format.Number(int64(article.ReadingMinutes), l)),
		Article:     article,
		Labels: BlogLabels{
			By:       labels.String("by"),
			Contents: labels.String("contents"),
			Related:  labels.String("related"),
			Service:  labels.String("service"),
			Back:     labels.String("back"),
			BackHref: r.reg.Href(routing.Blogs, l),
			Share:    labels.String("share"),
		},
	}

	if m, ok := clinic.MemberByID(post.Author); ok {
		member := b.scope(r, m.Namespace)
		page.Author = Author{
			Name:  member.String("name"),
			Role:  member.String("role"),
			Photo: m.Photo,
			Href:  r.reg.Href(routing.Team, l),
		}
	}
	if svc, ok := clinic.ServiceByKey(post.Service); ok {
		card := r.serviceCard(b, svc)
		page.Service = &card
	}
	related, err := r.postCards(ctx, b, clinic.Related(post, relatedCount))
	if err != nil {
		return err
	}
	page.Related = related

	b.title = page.Title
	b.description = page.Description
	b.image = post.Image
	b.ogType = "article"
	b.crumbTitle = page.Title
	b.data.Page = page

	site := b.scope(r, "site")
	b.jsonld = append(b.jsonld, seo.BlogPosting(seo.Article{
		Headline:      page.Title,
		Description:   page.Description,
		URL:           seo.Absolute(r.base, r.reg.Href(post.Canonical, l)),
		Image:         seo.Absolute(r.base, post.Image),
		AuthorName:    page.Author.Name,
		AuthorURL:     seo.Absolute(r.base, page.Author.Href),
		PublisherName: site.String("name"),
		PublisherLogo: seo.Absolute(r.base, clinic.Details.Logo),
		DatePublished: page.DateISO,
		WordCount:     article.Words,
		Language:      l.Profile().Tag.String(),
	}))
	return nil
}
