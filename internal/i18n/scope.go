package i18n

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

type errList struct {
	errs []error
}

func (l *errList) add(err error) { l.errs = append(l.errs, err) }

// Scope reads strings from one namespace and remembers every key that was
// missing or malformed. Sub-scopes share the parent's error list.
type Scope struct {
	catalog   *Catalog
	locale    locale.Locale
	namespace string
	node      any
	dead      bool
	errs      *errList
}

// Locale returns the scope's locale.
func (s *Scope) Locale() locale.Locale { return s.locale }

// Namespace returns the scope's full dotted namespace.
func (s *Scope) Namespace() string { return s.namespace }

// Err joins every lookup failure recorded so far, or returns nil.
func (s *Scope) Err() error {
	if len(s.errs.errs) == 0 {
		return nil
	}
	return errors.Join(s.errs.errs...)
}

func (s *Scope) value(key string) (any, bool) {
	if s.dead {
		return nil, false
	}
	if v, ok := walk(s.node, key); ok {
		return v, true
	}
	if v, ok := s.catalog.fallbacks.lookup(s.locale, joinKey(s.namespace, key)); ok {
		return v, true
	}
	return nil, false
}

func (s *Scope) fail(key string, err error) {
	if s.dead {
		return
	}
	s.errs.add(&KeyError{Locale: s.locale, Namespace: s.namespace, Key: key, Err: err})
}

// String returns the string at key, recording an error when it is absent.
func (s *Scope) String(key string) string {
	v, ok := s.value(key)
	if !ok {
		s.fail(key, ErrMissingKey)
		return ""
	}
	str, ok := scalar(v)
	if !ok {
		s.fail(key, ErrKeyType)
		return ""
	}
	return str
}

// Format is String passed through fmt.Sprintf.
func (s *Scope) Format(key string, args ...any) string {
	tmpl := s.String(key)
	if tmpl == "" {
		return ""
	}
	return fmt.Sprintf(tmpl, args...)
}

// Optional returns the string at key or "" without recording an error.
func (s *Scope) Optional(key string) string {
	v, ok := s.value(key)
	if !ok {
		return ""
	}
	str, _ := scalar(v)
	return str
}

// Strings returns a list of strings at key.
func (s *Scope) Strings(key string) []string {
	v, ok := s.value(key)
	if !ok {
		s.fail(key, ErrMissingKey)
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		s.fail(key, ErrKeyType)
		return nil
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		str, ok := scalar(item)
		if !ok {
			s.fail(joinKey(key, strconv.Itoa(i)), ErrKeyType)
			continue
		}
		out = append(out, str)
	}
	return out
}

// Sub returns a scope rooted at key.
func (s *Scope) Sub(key string) *Scope {
	sub := &Scope{catalog: s.catalog, locale: s.locale, namespace: joinKey(s.namespace, key), errs: s.errs}
	v, ok := s.value(key)
	if !ok {
		s.fail(key, ErrMissingKey)
		sub.dead = true
		return sub
	}
	sub.node = v
	return sub
}

// Each returns one scope per element of the list at key.
func (s *Scope) Each(key string) []*Scope {
	v, ok := s.value(key)
	if !ok {
		s.fail(key, ErrMissingKey)
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		s.fail(key, ErrKeyType)
		return nil
	}
	out := make([]*Scope, 0, len(list))
	for i, item := range list {
		out = append(out, &Scope{
			catalog:   s.catalog,
			locale:    s.locale,
			namespace: joinKey(s.namespace, joinKey(key, strconv.Itoa(i))),
			node:      item,
			errs:      s.errs,
		})
	}
	return out
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
