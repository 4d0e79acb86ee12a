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

	"github.com/casaverde/comanda/docs"
	"github.com/casaverde/comanda/internal/catalog"
	"github.com/casaverde/comanda/internal/queue"
	"github.com/casaverde/comanda/internal/ratelimiter"
	"github.com/casaverde/comanda/internal/service"
	"github.com/casaverde/comanda/internal/session"
	storemongo "github.com/casaverde/comanda/internal/store/mongo"
	"github.com/casaverde/comanda/internal/submit"
	"github.com/casaverde/comanda/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	rateLimiter   ratelimiter.Limiter
	storage       *storemongo.Storage
	broker        queue.Broker
	sessions      *session.Manager
	catalogReader *catalog.Reader
	coordinator   *submit.Coordinator
	importService *service.MenuImportService
	auditService  *service.AuditService
	importWorker  *worker.MenuImportWorker
	outcomeWorker *worker.OrderOutcomeWorker
}

type config struct {
	addr             string
	env              string
	apiURL           string
	rateLimiter      ratelimiter.Config
	mongo            mongoConfig
	rabbitMQ         rabbitMQConfig
	backend          backendConfig
	defaultBasePrice float64
	googleCreds      string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type backendConfig struct {
	BaseURL string
	Timeout time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Get("/catalog", app.getCatalogHandler)
		r.Get("/tables", app.getTablesHandler)

		r.Post("/daily-menu/import", app.createImportTaskHandler)
		r.Get("/daily-menu/import/{task_id}", app.getImportTaskHandler)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", app.createSessionHandler)

			r.Route("/{session_id}", func(r chi.Router) {
				r.Get("/", app.getSessionHandler)
				r.Delete("/", app.cancelSessionHandler)
				r.Patch("/table", app.setTableHandler)

				r.Put("/selection/protein", app.setProteinHandler)
				r.Put("/selection/components/{component}", app.setComponentHandler)
				r.Put("/selection/notes", app.setNotesHandler)

				r.Post("/items", app.addItemHandler)
				r.Patch("/items/{item_id}", app.setItemQuantityHandler)

				r.Post("/replacements", app.addReplacementHandler)
				r.Delete("/replacements/{replacement_id}", app.removeReplacementHandler)

				r.Post("/drafts", app.addOrUpdateDraftHandler)
				r.Post("/drafts/{index}/edit", app.editDraftHandler)
				r.Post("/drafts/{index}/duplicate", app.duplicateDraftHandler)
				r.Delete("/drafts/{index}", app.removeDraftHandler)

				r.Post("/confirm", app.confirmSessionHandler)
				r.Get("/audit", app.getSessionAuditHandler)
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Title = "Comanda"
	docs.SwaggerInfo.Description = "Order composition API for Casa Verde"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	if app.importWorker != nil {
		if err := app.importWorker.Start(); err != nil {
			return fmt.Errorf("failed to start menu import worker: %w", err)
		}
	}
	if app.outcomeWorker != nil {
		if err := app.outcomeWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order outcome worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.importWorker != nil {
			app.importWorker.Stop()
		}
		if app.outcomeWorker != nil {
			app.outcomeWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
