package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/zap"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/clinic"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/cms"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/handlers"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/httpserver"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/i18n"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/view"
)

// BaseURL is the site origin used by test servers.
const BaseURL = "https://clinic.example"

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithLogger routes server logs to logger, typically a zaptest observer.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithPages overrides the page resolver.
func WithPages(pages *handlers.Resolver) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Pages = pages
	}
}

// Root returns the repository root, where templates/, locales/ and public/
// live.
func Root(t testing.TB) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("locate testutil source")
	}
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// Catalog loads the shipped translation files.
func Catalog(t testing.TB) *i18n.Catalog {
	t.Helper()

	catalog, err := i18n.Load(filepath.Join(Root(t), "locales"), locale.Supported(), clinic.LocationFallbacks)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	return catalog
}

// Handler builds the full site handler from the repository's templates,
// locales and assets.
func Handler(t testing.TB, opts ...ServerOption) http.Handler {
	t.Helper()

	root := Root(t)
	views, err := view.New(filepath.Join(root, "templates"), view.WithAssets(os.DirFS(filepath.Join(root, "public", "assets"))))
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	catalog := Catalog(t)
	cfg := httpserver.Config{
		BaseURL:       BaseURL,
		DefaultLocale: locale.Default,
		Logger:        zap.NewNop(),
		Registry:      routing.Default(),
		Pages: handlers.NewResolver(handlers.Options{
			Catalog:  catalog,
			Articles: cms.NewRenderer(catalog),
			BaseURL:  BaseURL,
		}),
		Views:  views,
		Assets: os.DirFS(filepath.Join(root, "public", "assets")),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return httpserver.Handler(cfg)
}

// NewServer constructs an httptest server running the full site stack.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(Handler(t, opts...))
	t.Cleanup(ts.Close)
	return ts
}

// NoRedirectClient returns a client that reports redirects instead of
// following them.
func NoRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
