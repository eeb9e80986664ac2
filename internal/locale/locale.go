// Package locale defines the closed set of site languages and the
// presentation values that depend on them.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies one of the site's supported languages.
type Locale string

const (
	AR Locale = "ar"
	EN Locale = "en"
)

// Default is the locale used when nothing else selects one.
const Default = AR

// Direction is the text direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Profile groups every locale-dependent presentation value.
type Profile struct {
	Locale   Locale
	Tag      language.Tag
	Name     string // native display name
	Dir      Direction
	OGLocale string
	Months   [12]string
	// DateOrder is "dmy" or "mdy".
	DateOrder string
	Digits    [10]rune
}

var order = []Locale{AR, EN}

var profiles = map[Locale]Profile{
	AR: {
		Locale:   AR,
		Tag:      language.Arabic,
		Name:     "العربية",
		Dir:      RTL,
		OGLocale: "ar_EG",
		Months: [12]string{
			"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
			"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
		},
		DateOrder: "dmy",
		Digits:    [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'},
	},
	EN: {
		Locale:   EN,
		Tag:      language.English,
		Name:     "English",
		Dir:      LTR,
		OGLocale: "en_US",
		Months: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		DateOrder: "mdy",
		Digits:    [10]rune{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'},
	},
}

// Supported returns the supported locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(order))
	copy(out, order)
	return out
}

// Parse maps a language code such as "ar", "EN" or "en-US" onto a Locale.
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if i := strings.IndexAny(s, "-_"); i != -1 {
		s = s[:i]
	}
	l := Locale(s)
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// Valid reports whether l is a member of the supported set.
func (l Locale) Valid() bool {
	_, ok := profiles[l]
	return ok
}

func (l Locale) String() string { return string(l) }

// Profile returns the presentation profile for l. Unknown values get the
// default locale's profile.
func (l Locale) Profile() Profile {
	if p, ok := profiles[l]; ok {
		return p
	}
	return profiles[Default]
}

// Dir is shorthand for l.Profile().Dir.
func (l Locale) Dir() Direction { return l.Profile().Dir }
