package handlers

import (
	"context"
	"fmt"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/format"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

func (r *Resolver) serviceCard(b *build, s clinic.Service) Card {
	text := b.scope(r, s.Namespace)
	return Card{
		Href:     r.reg.Href(s.Canonical, b.req.Locale),
		Title:    text.String("title"),
		Summary:  text.String("summary"),
		Image:    s.Image,
		ImageAlt: text.String("imageAlt"),
		Icon:     s.Icon,
	}
}

func (r *Resolver) serviceCards(b *build, services []clinic.Service) []Card {
	cards := make([]Card, 0, len(services))
	for _, s := range services {
		cards = append(cards, r.serviceCard(b, s))
	}
	return cards
}

// postCard reads the article body as well so the card can show reading time.
func (r *Resolver) postCard(ctx context.Context, b *build, p clinic.Post) (Card, error) {
	l := b.req.Locale
	text := b.scope(r, p.Namespace)
	article, err := r.articles.Article(ctx, l, p.Namespace)
	if err != nil {
		return Card{}, fmt.Errorf("article %s: %w", p.Key, err)
	}
	labels := b.scope(r, "blogsPage")
	return Card{
		Href:     r.reg.Href(p.Canonical, l),
		Title:    text.String("title"),
		Summary:  text.String("description"),
		Image:    p.Image,
		ImageAlt: text.String("imageAlt"),
		Meta: format.Date(p.Published, l) + " · " +
			labels.Format("readingTime", format.Number(int64(article.ReadingMinutes), l)),
		DateISO: format.ISODate(p.Published),
	}, nil
}

func (r *Resolver) postCards(ctx context.Context, b *build, posts []clinic.Post) ([]Card, error) {
	cards := make([]Card, 0, len(posts))
	for _, p := range posts {
		card, err := r.postCard(ctx, b, p)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (r *Resolver) listEntries(cards []Card) []seo.ListEntry {
	entries := make([]seo.ListEntry, 0, len(cards))
	for _, c := range cards {
		entries = append(entries, seo.ListEntry{
			Name:  c.Title,
			URL:   seo.Absolute(r.base, c.Href),
			Image: seo.Absolute(r.base, c.Image),
		})
	}
	return entries
}

// clinicSchema is the DentalClinic payload for home, about and contact.
func (r *Resolver) clinicSchema(b *build) map[string]any {
	l := b.req.Locale
	site := b.scope(r, "site")
	loc := b.scope(r, "location")

	hours := make([]seo.OpeningHours, 0, len(clinic.Details.Hours))
	for _, h := range clinic.Details.Hours {
		hours = append(hours, seo.OpeningHours{Days: h.Days, Opens: h.Opens, Closes: h.Closes})
	}
	return seo.DentalClinic(seo.Clinic{
		Name:        site.String("name"),
		Description: site.String("description"),
		URL:         seo.Absolute(r.base, r.reg.Href(routing.Home, l)),
		Logo:        seo.Absolute(r.base, clinic.Details.Logo),
		Image:       seo.Absolute(r.base, clinic.Details.Image),
		Phone:       clinic.Details.Phone,
		Email:       clinic.Details.Email,
		PriceRange:  clinic.Details.PriceRange,
		Street:      loc.String("street"),
		Locality:    loc.String("city"),
		Region:      loc.String("region"),
		Country:     "EG",
		Latitude:    clinic.Details.Latitude,
		Longitude:   clinic.Details.Longitude,
		MapURL:      clinic.Details.MapURL,
		Hours:       hours,
		SameAs:      clinic.Details.Social,
		Language:    l.Profile().Tag.String(),
	})
}
