// Package clinic holds the locale-independent facts about the practice:
// contact details, services, articles, staff and case photos. Display text
// for each item lives in the message catalog under the item's Namespace.
package clinic

import (
	"sort"
	"strings"
	"time"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
)

// Hours is one opening-hours row (schema.org OpeningHoursSpecification).
type Hours struct {
	Days   []string // schema.org day names, e.g. "Saturday"
	Opens  string   // "10:00"
	Closes string   // "22:00"
}

// Info describes the clinic itself.
type Info struct {
	Phone      string
	WhatsApp   string
	Email      string
	Latitude   float64
	Longitude  float64
	MapURL     string
	MapEmbed   string
	Logo       string
	Image      string
	PriceRange string
	Hours      []Hours
	Social     []string
	Founded    int
}

// WhatsAppURL returns the click-to-chat link.
func (i Info) WhatsAppURL() string {
	return "https://wa.me/" + strings.TrimPrefix(i.WhatsApp, "+")
}

// PhoneURL returns a tel: link.
func (i Info) PhoneURL() string {
	return "tel:" + i.Phone
}

// Service is one treatment offered by the clinic.
type Service struct {
	Key       string
	Canonical routing.Canonical
	Namespace string
	Image     string
	Icon      string
}

// Post is one blog article.
type Post struct {
	Key       string
	Canonical routing.Canonical
	Namespace string
	Published time.Time
	Image     string
	Author    string // Member.ID
	Service   string // Service.Key
}

// Member is one person on the team page.
type Member struct {
	ID        string
	Namespace string
	Photo     string
	Specialty string // Service.Key
}

// Case is a before/after photo pair.
type Case struct {
	ID      string
	Service string // Service.Key
	Before  string
	After   string
}

// Details is the clinic's contact and location record.
var Details = Info{
	Phone:      "+201001234567",
	WhatsApp:   "+201001234567",
	Email:      "info@smileclinic.example",
	Latitude:   29.9602,
	Longitude:  31.2569,
	MapURL:     "https://maps.google.com/?q=29.9602,31.2569",
	MapEmbed:   "https://www.google.com/maps?q=29.9602,31.2569&output=embed",
	Logo:       "/assets/img/logo.svg",
	Image:      "/assets/img/clinic.webp",
	PriceRange: "$$",
	Hours: []Hours{
		{Days: []string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}, Opens: "12:00", Closes: "22:00"},
	},
	Social: []string{
		"https://www.facebook.com/smileclinic.example",
		"https://www.instagram.com/smileclinic.example",
		"https://www.tiktok.com/@smileclinic.example",
	},
	Founded: 2009,
}

func svc(key, icon string) Service {
	return Service{
		Key:       key,
		Canonical: routing.Canonical("/services/" + key),
		Namespace: "service-" + key,
		Image:     "/assets/img/services/" + key + ".webp",
		Icon:      icon,
	}
}

var services = []Service{
	svc("implant", "implant"),
	svc("hollywood-smile", "smile"),
	svc("orthodontics", "braces"),
	svc("whitening", "sparkle"),
	svc("veneers", "veneer"),
	svc("root-canal", "root"),
	svc("crowns", "crown"),
	svc("pediatric", "child"),
	svc("gum-treatment", "gum"),
	svc("cleaning", "brush"),
	svc("dentures", "denture"),
}

func post(key, date, author, service string) Post {
	published, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("clinic: bad publish date for " + key)
	}
	return Post{
		Key:       key,
		Canonical: routing.Canonical("/blogs/" + key),
		Namespace: "blog-" + key,
		Published: published,
		Image:     "/assets/img/blog/" + key + ".webp",
		Author:    author,
		Service:   service,
	}
}

var posts = []Post{
	post("hollywood-smile", "2024-11-20", "dr-ahmed", "hollywood-smile"),
	post("best-dentist-maadi", "2024-11-02", "dr-ahmed", "implant"),
	post("implant-cost", "2024-10-14", "dr-omar", "implant"),
	post("whitening-methods", "2024-09-28", "dr-sara", "whitening"),
	post("invisible-braces", "2024-09-10", "dr-mona", "orthodontics"),
	post("veneers-vs-crowns", "2024-08-22", "dr-sara", "veneers"),
	post("root-canal-pain", "2024-08-05", "dr-omar", "root-canal"),
	post("kids-first-visit", "2024-07-18", "dr-mona", "pediatric"),
	post("bleeding-gums", "2024-06-30", "dr-omar", "gum-treatment"),
	post("tooth-sensitivity", "2024-06-12", "dr-sara", "whitening"),
	post("dental-emergency", "2024-05-25", "dr-ahmed", "root-canal"),
	post("bad-breath", "2024-05-07", "dr-omar", "cleaning"),
	post("digital-smile-design", "2024-04-19", "dr-sara", "hollywood-smile"),
	post("oral-hygiene", "2024-04-01", "dr-mona", "cleaning"),
}

func member(id, specialty string) Member {
	return Member{
		ID:        id,
		Namespace: "team.members." + id,
		Photo:     "/assets/img/team/" + id + ".webp",
		Specialty: specialty,
	}
}

var team = []Member{
	member("dr-ahmed", "implant"),
	member("dr-sara", "veneers"),
	member("dr-omar", "root-canal"),
	member("dr-mona", "orthodontics"),
}

func beforeAfter(id, service string) Case {
	return Case{
		ID:      id,
		Service: service,
		Before:  "/assets/img/cases/" + id + "-before.webp",
		After:   "/assets/img/cases/" + id + "-after.webp",
	}
}

var cases = []Case{
	beforeAfter("case-1", "hollywood-smile"),
	beforeAfter("case-2", "implant"),
	beforeAfter("case-3", "orthodontics"),
	beforeAfter("case-4", "whitening"),
	beforeAfter("case-5", "veneers"),
	beforeAfter("case-6", "crowns"),
}

// Services returns every service in display order.
func Services() []Service {
	return append([]Service(nil), services...)
}

// ServiceByCanonical finds the service served at c.
func ServiceByCanonical(c routing.Canonical) (Service, bool) {
	for _, s := range services {
		if s.Canonical == c {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceByKey finds the service with the given key.
func ServiceByKey(key string) (Service, bool) {
	for _, s := range services {
		if s.Key == key {
			return s, true
		}
	}
	return Service{}, false
}

// Posts returns every article, newest first.
func Posts() []Post {
	out := append([]Post(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Published.After(out[j].Published) })
	return out
}

// PostByCanonical finds the article served at c.
func PostByCanonical(c routing.Canonical) (Post, bool) {
	for _, p := range posts {
		if p.Canonical == c {
			return p, true
		}
	}
	return Post{}, false
}

// Related returns up to n other articles, preferring ones about the same
// service, newest first.
func Related(p Post, n int) []Post {
	var same, other []Post
	for _, candidate := range Posts() {
		if candidate.Key == p.Key {
			continue
		}
		if candidate.Service == p.Service {
			same = append(same, candidate)
		} else {
			other = append(other, candidate)
		}
	}
	out := append(same, other...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Team returns the team in display order.
func Team() []Member {
	return append([]Member(nil), team...)
}

// MemberByID finds a team member.
func MemberByID(id string) (Member, bool) {
	for _, m := range team {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Cases returns every before/after pair.
func Cases() []Case {
	return append([]Case(nil), cases...)
}

// LocationFallbacks is the only default copy the site ships: the location
// widget renders on every page and keeps working when a translator leaves
// these keys out.
var LocationFallbacks = i18n.Fallbacks{
	locale.AR: {
		"location.hoursTitle": "مواعيد العمل",
		"location.hours":      "يومياً من ١٢ ظهراً حتى ١٠ مساءً عدا الجمعة",
		"location.directions": "احصل على الاتجاهات",
		"location.callUs":     "اتصل بنا",
	},
	locale.EN: {
		"location.hoursTitle": "Opening hours",
		"location.hours":      "Daily 12 PM to 10 PM, closed Fridays",
		"location.directions": "Get directions",
		"location.callUs":     "Call us",
	},
}
