package httpserver

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/handlers"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
	custommw "github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/middleware"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/observability"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/pagination"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/routing"
	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/view"
)

// Config holds runtime options and collaborators for the site server.
type Config struct {
	Address        string
	BaseURL        string
	DefaultLocale  locale.Locale
	Dev            bool
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration

	Logger   *zap.Logger
	Registry *routing.Registry
	Pages    *handlers.Resolver
	Views    *view.Renderer
	// Assets is served under /assets/.
	Assets fs.FS
}

// New constructs the HTTP server with the middleware stack and routes.
func New(cfg Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       orDefault(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      orDefault(cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       orDefault(cfg.IdleTimeout, 60*time.Second),
	}
}

// Handler builds the router. It is exposed separately for httptest servers.
func Handler(cfg Config) http.Handler {
	if cfg.Registry == nil {
		cfg.Registry = routing.Default()
	}
	if !cfg.DefaultLocale.Valid() {
		cfg.DefaultLocale = locale.Default
	}
	pages := &pageRenderer{resolver: cfg.Pages, views: cfg.Views, fallback: cfg.DefaultLocale}
	security := custommw.SiteSecurity
	security.IsDevelopment = cfg.Dev

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	router.Use(chimw.RealIP)
	router.Use(custommw.InjectLogger(cfg.Logger))
	router.Use(observability.TraceMiddleware)
	router.Use(custommw.RequestLogger)
	router.Use(custommw.Recovery(http.HandlerFunc(pages.ServeError)))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(orDefault(cfg.RequestTimeout, 30*time.Second)))
	router.Use(custommw.SecurityHeaders(security))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Assets != nil {
		router.Handle("/assets/*", http.StripPrefix("/assets/", custommw.AssetsWithCache(cfg.Assets)))
	}

	seo := seoFiles{registry: cfg.Registry, base: cfg.BaseURL}
	router.Get("/robots.txt", seo.robots)
	router.Get("/sitemap.xml", seo.sitemap)

	dispatcher := routing.NewDispatcher(cfg.Registry, locale.NewResolver(cfg.DefaultLocale), pages, pagination.Param)
	router.NotFound(dispatcher.ServeHTTP)
	router.MethodNotAllowed(dispatcher.ServeHTTP)
	router.Handle("/*", dispatcher)
	return router
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
