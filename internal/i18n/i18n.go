package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

var (
	// ErrMissingKey reports a translation key absent for the active locale.
	ErrMissingKey = errors.New("i18n: missing key")
	// ErrKeyType reports a key whose value has the wrong shape.
	ErrKeyType = errors.New("i18n: unexpected value type")
)

// KeyError identifies the failing (locale, namespace, key) triple.
type KeyError struct {
	Locale    locale.Locale
	Namespace string
	Key       string
	Err       error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %s:%s", e.Err, e.Locale, joinKey(e.Namespace, e.Key))
}

func (e *KeyError) Unwrap() error { return e.Err }

// Fallbacks enumerates default copy for specific keys, addressed by full
// dotted path ("location.title"). Keys not listed here have no fallback.
type Fallbacks map[locale.Locale]map[string]string

func (f Fallbacks) lookup(l locale.Locale, key string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f[l][key]
	return v, ok
}

// Catalog holds every locale's message tree. It is immutable after Load and
// safe for concurrent use.
type Catalog struct {
	trees     map[locale.Locale]map[string]any
	fallbacks Fallbacks
}

// Load reads <dir>/<locale>.yaml for every locale.
func Load(dir string, locales []locale.Locale, fallbacks Fallbacks) (*Catalog, error) {
	return LoadFS(os.DirFS(dir), locales, fallbacks)
}

// LoadFS is Load over an fs.FS.
func LoadFS(fsys fs.FS, locales []locale.Locale, fallbacks Fallbacks) (*Catalog, error) {
	if len(locales) == 0 {
		locales = locale.Supported()
	}
	c := &Catalog{
		trees:     make(map[locale.Locale]map[string]any, len(locales)),
		fallbacks: fallbacks,
	}
	for _, l := range locales {
		name := string(l) + ".yaml"
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", name, err)
		}
		if tree == nil {
			tree = map[string]any{}
		}
		c.trees[l] = tree
	}
	return c, nil
}

// Locales returns the loaded locales, sorted.
func (c *Catalog) Locales() []locale.Locale {
	out := make([]locale.Locale, 0, len(c.trees))
	for l := range c.trees {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup returns the value at namespace.key: a string, a []any or a
// map[string]any. Only keys named in the fallback table can be absent.
func (c *Catalog) Lookup(l locale.Locale, namespace, key string) (any, error) {
	full := joinKey(namespace, key)
	if v, ok := walk(c.trees[l], full); ok {
		return v, nil
	}
	if v, ok := c.fallbacks.lookup(l, full); ok {
		return v, nil
	}
	return nil, &KeyError{Locale: l, Namespace: namespace, Key: key, Err: ErrMissingKey}
}

// Has reports whether namespace.key exists for l without consulting fallbacks.
func (c *Catalog) Has(l locale.Locale, namespace, key string) bool {
	_, ok := walk(c.trees[l], joinKey(namespace, key))
	return ok
}

// Keys returns every leaf path of l, sorted. List elements appear as
// numeric segments ("faq.0.q").
func (c *Catalog) Keys(l locale.Locale) []string {
	var out []string
	collect(c.trees[l], "", &out)
	sort.Strings(out)
	return out
}

// Scope returns an accumulator bound to one namespace.
func (c *Catalog) Scope(l locale.Locale, namespace string) *Scope {
	s := &Scope{catalog: c, locale: l, namespace: namespace, errs: &errList{}}
	if namespace == "" {
		s.node = c.trees[l]
		return s
	}
	node, ok := walk(c.trees[l], namespace)
	if !ok {
		s.errs.add(&KeyError{Locale: l, Namespace: namespace, Err: ErrMissingKey})
		s.dead = true
		return s
	}
	s.node = node
	return s
}

func joinKey(namespace, key string) string {
	switch {
	case namespace == "":
		return key
	case key == "":
		return namespace
	default:
		return namespace + "." + key
	}
}

func walk(node any, path string) (any, bool) {
	if node == nil {
		return nil, false
	}
	if path == "" {
		return node, true
	}
	cur := node
	for _, part := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

func collect(node any, prefix string, out *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			collect(child, joinKey(prefix, k), out)
		}
	case []any:
		for i, child := range v {
			collect(child, joinKey(prefix, strconv.Itoa(i)), out)
		}
	case nil:
	default:
		*out = append(*out, prefix)
	}
}
