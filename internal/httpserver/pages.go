package httpserver

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/handlers"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/observability"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/view"
)

// pageRenderer adapts the page resolver and the template renderer to the
// dispatcher.
type pageRenderer struct {
	resolver *handlers.Resolver
	views    *view.Renderer
	fallback locale.Locale
}

var _ routing.Pages = (*pageRenderer)(nil)

// ServePage renders a routed page. Content errors become a logged 500.
func (p *pageRenderer) ServePage(w http.ResponseWriter, r *http.Request, req routing.ResolvedRequest) {
	data, err := p.resolver.Resolve(r.Context(), req)
	if err != nil {
		observability.FromContext(r.Context()).Error("build page failed",
			zap.String("canonical", string(req.Canonical)),
			zap.String("locale", string(req.Locale)),
			zap.Error(err),
		)
		p.serveStatus(w, r, req.Locale, p.resolver.ServerError)
		return
	}
	p.write(w, r, data)
}

// ServeNotFound renders the localized 404 page.
func (p *pageRenderer) ServeNotFound(w http.ResponseWriter, r *http.Request, l locale.Locale) {
	p.serveStatus(w, r, l, p.resolver.NotFound)
}

// ServeError renders the 500 page in the locale of the request path. It is
// the recovery fallback.
func (p *pageRenderer) ServeError(w http.ResponseWriter, r *http.Request) {
	p.serveStatus(w, r, p.pathLocale(r), p.resolver.ServerError)
}

type statusBuilder func(context.Context, locale.Locale) (handlers.PageData, error)

func (p *pageRenderer) serveStatus(w http.ResponseWriter, r *http.Request, l locale.Locale, build statusBuilder) {
	data, err := build(r.Context(), l)
	if err != nil {
		// Status pages still render with whatever copy resolved.
		observability.FromContext(r.Context()).Warn("status page content incomplete",
			zap.String("locale", string(l)),
			zap.Error(err),
		)
	}
	if data.Template == "" {
		writePlainError(w, http.StatusInternalServerError)
		return
	}
	p.write(w, r, data)
}

func (p *pageRenderer) write(w http.ResponseWriter, r *http.Request, data handlers.PageData) {
	var buf bytes.Buffer
	if err := p.views.Render(&buf, data.Template, data); err != nil {
		observability.FromContext(r.Context()).Error("render page failed",
			zap.String("template", data.Template),
			zap.Error(err),
		)
		writePlainError(w, http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Language", string(data.Locale))
	if data.Status >= http.StatusBadRequest {
		h.Set("Cache-Control", "no-store")
	}
	status := data.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p *pageRenderer) pathLocale(r *http.Request) locale.Locale {
	if req, ok := routing.FromContext(r.Context()); ok && req.Locale.Valid() {
		return req.Locale
	}
	segment, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if l, ok := locale.Parse(segment); ok {
		return l
	}
	return p.fallback
}

func writePlainError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}
