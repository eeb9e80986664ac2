package handlers

import (
	"context"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

const (
	homeServiceCount = 6
	homePostCount    = 3
	clinicVideo      = "/assets/video/clinic.mp4"
	clinicPoster     = "/assets/img/video-poster.webp"
	heroImage        = "/assets/img/hero.webp"
)

// HomePage is the landing page payload.
type HomePage struct {
	Hero     Hero
	About    AboutSection
	Services Section
	Marquee  Marquee
	Video    Video
	WhyUs    Features
	Blogs    Section
}

type Hero struct {
	Eyebrow       string
	Title         string
	Subtitle      string
	PrimaryCTA    string
	PrimaryHref   string
	SecondaryCTA  string
	SecondaryHref string
	Image         string
	ImageAlt      string
}

type Stat struct {
	Value string
	Label string
}

type AboutSection struct {
	Title string
	Text  string
	CTA   string
	Href  string
	Stats []Stat
}

// Section is a titled card grid with a "see all" link.
type Section struct {
	Title    string
	Subtitle string
	CTA      string
	Href     string
	Cards    []Card
}

// Marquee items are emitted twice so the CSS loop has no gap.
type Marquee struct {
	Title string
	Items []string
}

type Video struct {
	Title    string
	Subtitle string
	Caption  string
	Src      string
	Poster   string
}

type Feature struct {
	Title string
	Text  string
}

type Features struct {
	Title string
	Items []Feature
}

func (r *Resolver) home(ctx context.Context, b *build) error {
	l := b.req.Locale
	text := b.scope(r, "landingPage")

	hero := text.Sub("hero")
	about := text.Sub("aboutClinic")
	services := text.Sub("servicesSection")
	marquee := text.Sub("marquee")
	video := text.Sub("video")
	why := text.Sub("whyUs")
	blogs := text.Sub("blogsSection")

	page := HomePage{
		Hero: Hero{
			Eyebrow:       hero.String("eyebrow"),
			Title:         hero.String("title"),
			Subtitle:      hero.String("subtitle"),
			PrimaryCTA:    hero.String("primaryCta"),
			PrimaryHref:   clinic.Details.WhatsAppURL(),
			SecondaryCTA:  hero.String("secondaryCta"),
			SecondaryHref: r.reg.Href(routing.Services, l),
			Image:         heroImage,
			ImageAlt:      hero.String("imageAlt"),
		},
		About: AboutSection{
			Title: about.String("title"),
			Text:  about.String("text"),
			CTA:   about.String("cta"),
			Href:  r.reg.Href(routing.About, l),
		},
		Services: Section{
			Title:    services.String("title"),
			Subtitle: services.String("subtitle"),
			CTA:      services.String("cta"),
			Href:     r.reg.Href(routing.Services, l),
		},
		Video: Video{
			Title:    video.String("title"),
			Subtitle: video.String("subtitle"),
			Caption:  video.String("caption"),
			Src:      clinicVideo,
			Poster:   clinicPoster,
		},
		WhyUs: Features{Title: why.String("title")},
		Blogs: Section{
			Title:    blogs.String("title"),
			Subtitle: blogs.String("subtitle"),
			CTA:      blogs.String("cta"),
			Href:     r.reg.Href(routing.Blogs, l),
		},
	}
	for _, s := range about.Each("stats") {
		page.About.Stats = append(page.About.Stats, Stat{Value: s.String("value"), Label: s.String("label")})
	}
	for _, f := range why.Each("items") {
		page.WhyUs.Items = append(page.WhyUs.Items, Feature{Title: f.String("title"), Text: f.String("text")})
	}
	items := marquee.Strings("items")
	page.Marquee = Marquee{
		Title: marquee.String("title"),
		Items: append(append([]string(nil), items...), items...),
	}

	all := clinic.Services()
	if len(all) > homeServiceCount {
		all = all[:homeServiceCount]
	}
	page.Services.Cards = r.serviceCards(b, all)

	posts := clinic.Posts()
	if len(posts) > homePostCount {
		posts = posts[:homePostCount]
	}
	cards, err := r.postCards(ctx, b, posts)
	if err != nil {
		return err
	}
	page.Blogs.Cards = cards

	b.title = text.String("title")
	b.description = text.String("description")
	b.image = heroImage
	b.data.Page = page

	site := b.scope(r, "site")
	b.jsonld = append(b.jsonld,
		r.clinicSchema(b),
		seo.WebSite(site.String("name"), seo.Absolute(r.base, r.reg.Href(routing.Home, l)), l.Profile().Tag.String()),
	)
	return nil
}
