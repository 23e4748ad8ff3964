//
// Blog
// ====
// A REST service for blog articles grouped by category. Anyone may browse;
// signed-in users write articles, and only an article's author or an
// administrator may edit or delete it.
//
// Also check the generated docs by passing the -routes flag,
// to run yourself do: `go run . -routes`
//
// Boot the server:
// ----------------
// $ export BLOG_JWT_SECRET=dev
// $ go run . -storage memory
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/articles
// [{"id":5,"title":"Whats up",...,"author":{"id":100,"userName":"peter","role":"author"}},...]
//
// $ curl http://localhost:3333/articles/categories/club
// [{"id":1,"title":"Hi",...}]
//
// $ TOKEN=$(go run . -storage memory -issue_token julia)
// $ curl -H "Authorization: Bearer $TOKEN" -X POST \
//     -d '{"title":"Derby","content":"Report","category":"Game"}' http://localhost:3333/articles
// {"id":6,"location":"/articles"}
//
// $ curl -H "Authorization: Bearer $TOKEN" -X DELETE http://localhost:3333/articles/1
// {"status":"Forbidden."}
//
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/auth"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logging"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
	"github.com/SergeyParamoshkin/blog/internal/postgres"
)

const ServiceName = "blog"

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
	store       article.Store
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
	closers     []func()
}

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.IssueToken != "" {
		name, roles := cfg.TokenSubject()
		token, err := auth.IssueToken(cfg.JWTSecret, auth.Principal{Name: name, Roles: roles}, 24*time.Hour)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(token)

		return
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck // flushes buffer, if any

	a := &App{
		sugarLogger: logger.Sugar(),
		config:      cfg,
		registry:    prometheus.NewRegistry(),
	}

	if cfg.Routes {
		a.store = article.NewMemStore()
		if err := a.setupMetrics(); err != nil {
			a.sugarLogger.Fatalw("metrics", "error", err)
		}
		// Passing -routes to the program will generate docs for the router.
		fmt.Println(docgen.MarkdownRoutesDoc(a.router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blog",
			Intro:       "Blog article service routes.",
		}))

		return
	}

	if err := a.run(); err != nil {
		a.sugarLogger.Errorw("service stopped", "error", err)
		a.close()
		os.Exit(1)
	}
	a.close()
}

func (a *App) run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.setupMetrics(); err != nil {
		return err
	}

	if err := a.setupStore(ctx); err != nil {
		return err
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", metrics.Handler(a.registry).ServeHTTP)

	servers := []*http.Server{
		{Addr: a.config.Addr, Handler: a.router(), ReadHeaderTimeout: 10 * time.Second},
		{Addr: a.config.DiagAddr, Handler: diagRouter, ReadHeaderTimeout: 10 * time.Second},
	}

	errs := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.sugarLogger.Errorw("shutdown", "addr", srv.Addr, "error", err)
		}
	}

	return runErr
}

func (a *App) setupMetrics() error {
	provider, err := metrics.NewProvider(a.registry)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(provider)
	a.closers = append(a.closers, func() { _ = provider.Shutdown(context.Background()) })

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		return fmt.Errorf("create instruments: %w", err)
	}
	a.metrics = m

	return nil
}

func (a *App) setupStore(ctx context.Context) error {
	if a.config.Storage == config.StorageMemory {
		a.sugarLogger.Warnw("using in-memory storage with fixture data")
		a.store = article.NewFixtureStore()

		return nil
	}

	if a.config.Migrate {
		if err := postgres.Migrate(a.config.DatabaseURL); err != nil {
			return err
		}
		a.sugarLogger.Infow("migrations applied")
	}

	pool, err := postgres.Connect(ctx, a.config.DatabaseURL, int32(a.config.DBMaxConns))
	if err != nil {
		return err
	}
	a.closers = append(a.closers, pool.Close)

	if err := metrics.RegisterPoolStats(a.registry, pool); err != nil {
		return fmt.Errorf("register pool metrics: %w", err)
	}

	a.store = postgres.NewArticleRepository(pool)

	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *App) router() chi.Router {
	render.Respond = errresponse.Respond

	svc := article.NewService(a.store, a.sugarLogger)
	api := article.NewAPI(svc, a.metrics)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.Middleware)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(auth.Authenticate(auth.NewVerifier(a.config.JWTSecret)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, article.ListPath, http.StatusFound)
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Debugw("ping")
		if _, err := w.Write([]byte("pong")); err != nil {
			logging.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	// RESTy routes for "articles" resource
	r.Mount("/articles", api.Routes())

	// Mount the admin sub-router
	r.Mount("/admin", api.AdminRoutes())

	return r
}
