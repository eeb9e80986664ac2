package handlers

import (
	"context"
	"strconv"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/format"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/seo"
)

const aboutImage = "/assets/img/about.webp"

// AboutPage tells the clinic's story.
type AboutPage struct {
	Heading  string
	Intro    string
	Story    []string
	Image    string
	ImageAlt string
	Since    string
	Mission  Feature
	Vision   Feature
	Values   Features
	Team     Section
}

// BeforeAfterPage is the gallery of comparison sliders.
type BeforeAfterPage struct {
	Heading     string
	Intro       string
	BeforeLabel string
	AfterLabel  string
	SliderLabel string
	Cases       []CaseView
	CTA         string
	CTAHref     string
}

// CaseView is one data-compare slider.
type CaseView struct {
	ID      string
	Title   string
	Caption string
	Before  string
	After   string
	Alt     string
	Href    string
}

// ContactPage lists every way to reach the clinic.
type ContactPage struct {
	Heading  string
	Intro    string
	Channels []Channel
	Note     string
}

type Channel struct {
	Kind  string
	Label string
	Value string
	Href  string
}

// TeamPage is the hover grid of doctors.
type TeamPage struct {
	Heading string
	Intro   string
	Members []MemberView
}

type MemberView struct {
	ID        string
	Name      string
	Role      string
	Bio       string
	Photo     string
	Specialty *Card
}

func (r *Resolver) about(_ context.Context, b *build) error {
	l := b.req.Locale
	text := b.scope(r, "about")
	mission := text.Sub("mission")
	vision := text.Sub("vision")
	values := text.Sub("values")

	page := AboutPage{
		Heading:  text.String("heading"),
		Intro:    text.String("intro"),
		Story:    text.Strings("story"),
		Image:    aboutImage,
		ImageAlt: text.String("imageAlt"),
		Since:    text.Format("since", format.Digits(strconv.Itoa(clinic.Details.Founded), l)),
		Mission:  Feature{Title: mission.String("title"), Text: mission.String("text")},
		Vision:   Feature{Title: vision.String("title"), Text: vision.String("text")},
		Values:   Features{Title: values.String("title")},
		Team: Section{
			Title: text.String("teamTitle"),
			CTA:   text.String("teamCta"),
			Href:  r.reg.Href(routing.Team, l),
		},
	}
	for _, v := range values.Each("items") {
		page.Values.Items = append(page.Values.Items, Feature{Title: v.String("title"), Text: v.String("text")})
	}

	b.title = text.String("title")
	b.description = text.String("description")
	b.image = aboutImage
	b.data.Page = page
	b.jsonld = append(b.jsonld, r.clinicSchema(b))
	return nil
}

func (r *Resolver) beforeAfter(_ context.Context, b *build) error {
	l := b.req.Locale
	text := b.scope(r, "beforeAfter")
	cases := text.Sub("cases")

	page := BeforeAfterPage{
		Heading:     text.String("heading"),
		Intro:       text.String("intro"),
		BeforeLabel: text.String("before"),
		AfterLabel:  text.String("after"),
		SliderLabel: text.String("sliderLabel"),
		CTA:         text.String("cta"),
		CTAHref:     clinic.Details.WhatsAppURL(),
	}
	for _, c := range clinic.Cases() {
		item := cases.Sub(c.ID)
		view := CaseView{
			ID:      c.ID,
			Title:   item.String("title"),
			Caption: item.String("caption"),
			Before:  c.Before,
			After:   c.After,
			Alt:     item.String("alt"),
		}
		if svc, ok := clinic.ServiceByKey(c.Service); ok {
			view.Href = r.reg.Href(svc.Canonical, l)
		}
		page.Cases = append(page.Cases, view)
	}

	b.title = text.String("title")
	b.description = text.String("description")
	if len(page.Cases) > 0 {
		b.image = page.Cases[0].After
	}
	b.data.Page = page
	b.jsonld = append(b.jsonld, seo.MedicalWebPage(
		page.Heading, b.description,
		seo.Absolute(r.base, r.reg.Href(routing.BeforeAfter, l)),
		page.Heading, l.Profile().Tag.String(),
	))
	return nil
}

func (r *Resolver) contact(_ context.Context, b *build) error {
	text := b.scope(r, "contact")
	loc := b.scope(r, "location")
	channels := text.Sub("channels")

	page := ContactPage{
		Heading: text.String("heading"),
		Intro:   text.String("intro"),
		Note:    text.String("note"),
		Channels: []Channel{
			{Kind: "whatsapp", Label: channels.String("whatsapp"), Value: clinic.Details.WhatsApp, Href: clinic.Details.WhatsAppURL()},
			{Kind: "phone", Label: channels.String("phone"), Value: clinic.Details.Phone, Href: clinic.Details.PhoneURL()},
			{Kind: "email", Label: channels.String("email"), Value: clinic.Details.Email, Href: "mailto:" + clinic.Details.Email},
			{Kind: "address", Label: channels.String("address"), Value: loc.String("address"), Href: clinic.Details.MapURL},
		},
	}

	b.title = text.String("title")
	b.description = text.String("description")
	b.data.Page = page
	b.jsonld = append(b.jsonld, r.clinicSchema(b))
	return nil
}

func (r *Resolver) team(_ context.Context, b *build) error {
	l := b.req.Locale
	text := b.scope(r, "team")
	site := b.scope(r, "site")

	page := TeamPage{
		Heading: text.String("heading"),
		Intro:   text.String("intro"),
	}
	for _, m := range clinic.Team() {
		member := b.scope(r, m.Namespace)
		view := MemberView{
			ID:    m.ID,
			Name:  member.String("name"),
			Role:  member.String("role"),
			Bio:   member.String("bio"),
			Photo: m.Photo,
		}
		var knows []string
		if svc, ok := clinic.ServiceByKey(m.Specialty); ok {
			card := r.serviceCard(b, svc)
			view.Specialty = &card
			knows = append(knows, card.Title)
		}
		page.Members = append(page.Members, view)
		b.jsonld = append(b.jsonld, seo.PersonSchema(seo.Person{
			Name:     view.Name,
			JobTitle: view.Role,
			Image:    seo.Absolute(r.base, m.Photo),
			URL:      seo.Absolute(r.base, r.reg.Href(routing.Team, l)) + "#" + m.ID,
			WorksFor: site.String("name"),
			Knows:    knows,
		}))
	}

	b.title = text.String("title")
	b.description = text.String("description")
	b.data.Page = page
	return nil
}
