package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"pago/internal/gateway"
	"pago/internal/webhook"
)

type application struct {
	config  config
	gateway *gateway.Gateway
	hooks   *webhook.Manager
	logger  *zap.SugaredLogger
}

type config struct {
	addr string
	env  string

	storeKind string
	db        dbConfig

	retryAttempts  int
	retryDelay     time.Duration
	webhookTimeout time.Duration

	blockedBINs []string

	kafka kafkaConfig
	auth  authConfig
}

type dbConfig struct {
	addr           string
	maxOpenConns   int
	maxIdleConns   int
	maxIdleTime    string
	migrationsPath string
}

type kafkaConfig struct {
	enabled bool
	brokers []string
	topic   string
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", app.createPaymentHandler)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", app.listTransactionsHandler)
			r.Get("/summary", app.summaryHandler)
			r.Get("/{transactionID}", app.getTransactionHandler)
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.With(app.BasicAuthMiddleware()).Post("/", app.registerWebhookHandler)
			r.With(app.BasicAuthMiddleware()).Get("/", app.listWebhooksHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

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
