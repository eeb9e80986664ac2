// Package view renders html/template pages. Layouts and partials are shared;
// every file under pages/ gets its own clone so page templates can each
// define "content" and "head" without colliding.
package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/middleware"
)

// ErrUnknownTemplate is returned by Render for a page with no template file.
var ErrUnknownTemplate = errors.New("view: unknown page template")

const (
	layoutsDir  = "layouts"
	partialsDir = "partials"
	pagesDir    = "pages"
	rootName    = "base"
)

// Option customizes a Renderer.
type Option func(*Renderer)

// WithDev reparses templates on every render.
func WithDev(dev bool) Option {
	return func(r *Renderer) { r.dev = dev }
}

// WithAssets enables the asset func, which appends a content hash to public
// asset URLs. fsys is rooted at the assets directory.
func WithAssets(fsys fs.FS) Option {
	return func(r *Renderer) { r.assets = fsys }
}

// Renderer executes the "base" layout for a named page.
type Renderer struct {
	fsys   fs.FS
	dev    bool
	assets fs.FS

	mu     sync.RWMutex
	pages  map[string]*template.Template
	hashes sync.Map
}

// New parses every template under dir.
func New(dir string, opts ...Option) (*Renderer, error) {
	return NewFS(os.DirFS(dir), opts...)
}

// NewFS is New over an fs.FS.
func NewFS(fsys fs.FS, opts ...Option) (*Renderer, error) {
	r := &Renderer{fsys: fsys}
	for _, opt := range opts {
		opt(r)
	}
	pages, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pages[name]
	return ok
}

// Render executes page name into w. Output is buffered so a failing template
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	pages := r.current()
	if r.dev {
		reparsed, err := r.parse()
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.pages = reparsed
		r.mu.Unlock()
		pages = reparsed
	}
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, rootName, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) current() map[string]*template.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pages
}

func (r *Renderer) parse() (map[string]*template.Template, error) {
	shared, err := r.files(layoutsDir, partialsDir)
	if err != nil {
		return nil, err
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no layout templates found under %s/", layoutsDir)
	}
	root, err := template.New(rootName).Funcs(r.funcs()).ParseFS(r.fsys, shared...)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	pageFiles, err := r.files(pagesDir)
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(r.fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = t
	}
	return pages, nil
}

// files walks dirs for .tmpl files. Missing directories are skipped.
func (r *Renderer) files(dirs ...string) ([]string, error) {
	var out []string
	for _, dir := range dirs {
		err := fs.WalkDir(r.fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && p == dir {
					return fs.SkipDir
				}
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
				out = append(out, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	return out, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"asset": r.asset,
		// url marks a trusted href (tel:, mailto:, wa.me) as safe.
		"url": func(s string) template.URL { return template.URL(s) },
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict: odd number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
		"add": func(a, b int) int { return a + b },
	}
}

// asset maps "/assets/css/site.css" to "/assets/css/site.css?v=<hash>".
func (r *Renderer) asset(p string) string {
	if r.assets == nil {
		return p
	}
	if v, ok := r.hashes.Load(p); ok && !r.dev {
		return v.(string)
	}
	out := p
	if tag := middleware.ETag(r.assets, strings.TrimPrefix(p, "/assets/")); tag != "" {
		out = p + "?v=" + tag
	}
	r.hashes.Store(p, out)
	return out
}
