package seo

import (
	"encoding/json"
	"html/template"
)

const schemaContext = "https://schema.org"

// JSON marshals v for a <script type="application/ld+json"> block. It
// returns an empty string on error. encoding/json escapes <, > and & so the
// payload cannot close the script element.
func JSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

func schema(typ string) map[string]any {
	return map[string]any{
		"@context": schemaContext,
		"@type":    typ,
	}
}

func setIf(m map[string]any, key string, v string) {
	if v != "" {
		m[key] = v
	}
}

// OpeningHours is one schema.org OpeningHoursSpecification.
type OpeningHours struct {
	Days   []string
	Opens  string
	Closes string
}

// Clinic is the input to DentalClinic.
type Clinic struct {
	Name        string
	Description string
	URL         string
	Logo        string
	Image       string
	Phone       string
	Email       string
	PriceRange  string
	Street      string
	Locality    string
	Region      string
	Country     string
	Latitude    float64
	Longitude   float64
	MapURL      string
	Hours       []OpeningHours
	SameAs      []string
	Language    string
}

// DentalClinic returns the schema.org DentalClinic payload.
func DentalClinic(c Clinic) map[string]any {
	m := schema("DentalClinic")
	m["name"] = c.Name
	setIf(m, "description", c.Description)
	setIf(m, "url", c.URL)
	setIf(m, "@id", c.URL+"#clinic")
	setIf(m, "logo", c.Logo)
	setIf(m, "image", c.Image)
	setIf(m, "telephone", c.Phone)
	setIf(m, "email", c.Email)
	setIf(m, "priceRange", c.PriceRange)
	setIf(m, "hasMap", c.MapURL)
	setIf(m, "inLanguage", c.Language)
	if c.Street != "" || c.Locality != "" {
		addr := map[string]any{"@type": "PostalAddress"}
		setIf(addr, "streetAddress", c.Street)
		setIf(addr, "addressLocality", c.Locality)
		setIf(addr, "addressRegion", c.Region)
		setIf(addr, "addressCountry", c.Country)
		m["address"] = addr
	}
	if c.Latitude != 0 || c.Longitude != 0 {
		m["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  c.Latitude,
			"longitude": c.Longitude,
		}
	}
	if len(c.Hours) > 0 {
		hours := make([]map[string]any, 0, len(c.Hours))
		for _, h := range c.Hours {
			hours = append(hours, map[string]any{
				"@type":     "OpeningHoursSpecification",
				"dayOfWeek": h.Days,
				"opens":     h.Opens,
				"closes":    h.Closes,
			})
		}
		m["openingHoursSpecification"] = hours
	}
	if len(c.SameAs) > 0 {
		m["sameAs"] = c.SameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, language string) map[string]any {
	m := schema("WebSite")
	m["name"] = name
	setIf(m, "url", url)
	setIf(m, "inLanguage", language)
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	m := schema("BreadcrumbList")
	m["itemListElement"] = el
	return m
}

// Article is the input to BlogPosting.
type Article struct {
	Headline      string
	Description   string
	URL           string
	Image         string
	AuthorName    string
	AuthorURL     string
	PublisherName string
	PublisherLogo string
	DatePublished string
	WordCount     int
	Language      string
	Keywords      []string
}

// BlogPosting returns a schema.org BlogPosting payload.
func BlogPosting(a Article) map[string]any {
	m := schema("BlogPosting")
	m["headline"] = a.Headline
	setIf(m, "description", a.Description)
	setIf(m, "url", a.URL)
	setIf(m, "image", a.Image)
	setIf(m, "datePublished", a.DatePublished)
	setIf(m, "dateModified", a.DatePublished)
	setIf(m, "inLanguage", a.Language)
	if a.URL != "" {
		m["mainEntityOfPage"] = map[string]any{"@type": "WebPage", "@id": a.URL}
	}
	if a.AuthorName != "" {
		author := map[string]any{"@type": "Person", "name": a.AuthorName}
		setIf(author, "url", a.AuthorURL)
		m["author"] = author
	}
	if a.PublisherName != "" {
		pub := map[string]any{"@type": "Organization", "name": a.PublisherName}
		if a.PublisherLogo != "" {
			pub["logo"] = map[string]any{"@type": "ImageObject", "url": a.PublisherLogo}
		}
		m["publisher"] = pub
	}
	if a.WordCount > 0 {
		m["wordCount"] = a.WordCount
	}
	if len(a.Keywords) > 0 {
		m["keywords"] = a.Keywords
	}
	return m
}

// Person is the input to PersonSchema.
type Person struct {
	Name     string
	JobTitle string
	Image    string
	URL      string
	WorksFor string
	Knows    []string
}

// PersonSchema returns a schema.org Person payload.
func PersonSchema(p Person) map[string]any {
	m := schema("Person")
	m["name"] = p.Name
	setIf(m, "jobTitle", p.JobTitle)
	setIf(m, "image", p.Image)
	setIf(m, "url", p.URL)
	if p.WorksFor != "" {
		m["worksFor"] = map[string]any{"@type": "DentalClinic", "name": p.WorksFor}
	}
	if len(p.Knows) > 0 {
		m["knowsAbout"] = p.Knows
	}
	return m
}

// Offer is the input to Service.
type Offer struct {
	Name        string
	Description string
	URL         string
	Image       string
	Provider    string
	ProviderURL string
	AreaServed  string
}

// Service returns a schema.org Service payload for one treatment.
func Service(o Offer) map[string]any {
	m := schema("Service")
	m["name"] = o.Name
	m["serviceType"] = o.Name
	setIf(m, "description", o.Description)
	setIf(m, "url", o.URL)
	setIf(m, "image", o.Image)
	setIf(m, "areaServed", o.AreaServed)
	if o.Provider != "" {
		provider := map[string]any{"@type": "DentalClinic", "name": o.Provider}
		setIf(provider, "url", o.ProviderURL)
		m["provider"] = provider
	}
	return m
}

// MedicalWebPage returns a schema.org MedicalWebPage payload.
func MedicalWebPage(name, description, url, about, language string) map[string]any {
	m := schema("MedicalWebPage")
	m["name"] = name
	setIf(m, "description", description)
	setIf(m, "url", url)
	setIf(m, "inLanguage", language)
	if about != "" {
		m["about"] = map[string]any{"@type": "MedicalProcedure", "name": about}
	}
	return m
}

// ListEntry is one element of an ItemList.
type ListEntry struct {
	Name  string
	URL   string
	Image string
}

// ItemList returns a schema.org ItemList payload.
func ItemList(name string, entries []ListEntry) map[string]any {
	el := make([]map[string]any, 0, len(entries))
	for i, e := range entries {
		item := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     e.Name,
			"url":      e.URL,
		}
		setIf(item, "image", e.Image)
		el = append(el, item)
	}
	m := schema("ItemList")
	setIf(m, "name", name)
	m["numberOfItems"] = len(entries)
	m["itemListElement"] = el
	return m
}
