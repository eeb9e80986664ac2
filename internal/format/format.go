package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

// Date formats t in a locale-friendly long form.
// Example: Date(t, locale.EN) => "Mar 5, 2024", Date(t, locale.AR) => "٥ مارس ٢٠٢٤"
func Date(t time.Time, l locale.Locale) string {
	p := l.Profile()
	month := p.Months[t.Month()-1]
	day := Digits(strconv.Itoa(t.Day()), l)
	year := Digits(strconv.Itoa(t.Year()), l)
	if p.DateOrder == "mdy" {
		return month + " " + day + ", " + year
	}
	return day + " " + month + " " + year
}

// ISODate renders t as YYYY-MM-DD for machine-readable attributes.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Number formats n with thousands separators and the locale's digits.
func Number(n int64, l locale.Locale) string {
	return Digits(thousandSep(n), l)
}

// Digits replaces ASCII digits in s with the locale's digit glyphs.
func Digits(s string, l locale.Locale) string {
	digits := l.Profile().Digits
	if digits[0] == '0' {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(digits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func thousandSep(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
