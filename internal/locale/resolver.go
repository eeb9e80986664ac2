package locale

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// CookieName stores the visitor's last explicit language choice.
const CookieName = "hl"

// Signal carries the negotiation inputs of a request.
type Signal struct {
	Cookie         string
	AcceptLanguage string
}

// SignalFromRequest extracts the negotiation inputs from r.
func SignalFromRequest(r *http.Request) Signal {
	if r == nil {
		return Signal{}
	}
	var s Signal
	if c, err := r.Cookie(CookieName); err == nil {
		s.Cookie = c.Value
	}
	s.AcceptLanguage = r.Header.Get("Accept-Language")
	return s
}

// Resolver picks exactly one supported locale for a request. It is
// stateless and safe for concurrent use.
type Resolver struct {
	fallback Locale
}

// NewResolver returns a resolver that falls back to fallback, or to Default
// when fallback is not supported.
func NewResolver(fallback Locale) *Resolver {
	if !fallback.Valid() {
		fallback = Default
	}
	return &Resolver{fallback: fallback}
}

// Default returns the configured fallback locale.
func (r *Resolver) Default() Locale { return r.fallback }

// Resolve applies the precedence explicit prefix, then negotiation signal,
// then the configured default. It never fails.
func (r *Resolver) Resolve(prefix string, signal Signal) Locale {
	if l, ok := Parse(prefix); ok {
		return l
	}
	if l, ok := r.Negotiate(signal); ok {
		return l
	}
	return r.fallback
}

// Negotiate returns the locale named by the cookie or, failing that, the
// highest weighted supported language in Accept-Language.
func (r *Resolver) Negotiate(signal Signal) (Locale, bool) {
	if l, ok := Parse(signal.Cookie); ok {
		return l, true
	}
	return matchAcceptLanguage(signal.AcceptLanguage)
}

func matchAcceptLanguage(header string) (Locale, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	// tags come back ordered by descending q
	tags, weights, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}
	for i, tag := range tags {
		if i < len(weights) && weights[i] <= 0 {
			continue
		}
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		if l, ok := Parse(base.String()); ok {
			return l, true
		}
	}
	return "", false
}
