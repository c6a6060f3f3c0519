package api

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
	_ "github.com/hilthontt/tripsync/docs"
	"github.com/hilthontt/tripsync/internal/infrastructure/auth"
	"github.com/hilthontt/tripsync/internal/infrastructure/configs"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/metrics"
	"github.com/hilthontt/tripsync/internal/infrastructure/ratelimiter"
	collaborationsHandler "github.com/hilthontt/tripsync/internal/presentation/handler/collaborations"
	healthHandler "github.com/hilthontt/tripsync/internal/presentation/handler/health"
	itineraryHandler "github.com/hilthontt/tripsync/internal/presentation/handler/itinerary"
	realtimeHandler "github.com/hilthontt/tripsync/internal/presentation/handler/realtime"
	tripsHandler "github.com/hilthontt/tripsync/internal/presentation/handler/trips"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

type Handlers struct {
	Collaborations *collaborationsHandler.Handler
	Trips          *tripsHandler.Handler
	Itinerary      *itineraryHandler.Handler
	Realtime       *realtimeHandler.Handler
	Health         *healthHandler.Handler
}

type Application struct {
	config      configs.Config
	handlers    Handlers
	logger      logging.Logger
	bootstrap   *zap.SugaredLogger
	ratelimiter ratelimiter.Limiter
	verifier    *auth.Verifier
}

func NewApplication(
	config configs.Config,
	handlers Handlers,
	logger logging.Logger,
	bootstrap *zap.SugaredLogger,
	ratelimiter ratelimiter.Limiter,
	verifier *auth.Verifier,
) *Application {
	if logger == nil {
		logger = logging.NewNop()
	}
	if bootstrap == nil {
		bootstrap = zap.NewNop().Sugar()
	}

	return &Application{
		config:      config,
		handlers:    handlers,
		logger:      logger,
		bootstrap:   bootstrap,
		ratelimiter: ratelimiter,
		verifier:    verifier,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.tracingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(app.loggerMiddleware)
	r.Use(app.enableCors)
	if app.ratelimiter != nil {
		r.Use(app.rateLimiterMiddleware)
	}

	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.handlers.Health.GetHealth)
		r.Get("/healthz", app.handlers.Health.GetHealth)
		r.Get("/live", app.handlers.Health.GetHealth)
		r.Get("/ready", app.handlers.Health.GetReady)

		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware)

			// The socket lives as long as the client, outside the request timeout.
			r.Get("/ws", app.handlers.Realtime.ServeWS)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(requestTimeout))

				r.Route("/collaborations", func(r chi.Router) {
					r.Post("/", app.handlers.Collaborations.CreateTripHandler)
					r.Get("/", app.handlers.Collaborations.ListTripsHandler)
					r.Post("/join", app.handlers.Collaborations.JoinTripHandler)
					r.Put("/update/{tripCode}", app.handlers.Collaborations.UpdateItineraryHandler)
					r.Get("/{tripCode}", app.handlers.Collaborations.GetTripHandler)
				})

				r.Route("/trips", func(r chi.Router) {
					r.Post("/", app.handlers.Trips.CreateTripHandler)
					r.Get("/", app.handlers.Trips.ListTripsHandler)
					r.Get("/{id}", app.handlers.Trips.GetTripHandler)
					r.Put("/{id}", app.handlers.Trips.UpdateTripHandler)
					r.Delete("/{id}", app.handlers.Trips.DeleteTripHandler)
				})

				r.Post("/itinerary/generate", app.handlers.Itinerary.GenerateHandler)
			})
		})
	})

	return r
}

func (app *Application) tracingMiddleware(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, metrics.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (app *Application) Run(mux http.Handler) error {
	readTimeout := app.config.HTTP.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := app.config.HTTP.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.handlers.Health.SetHealthy(false)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.bootstrap.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.bootstrap.Infow("server has started", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.bootstrap.Infow("server has stopped", "addr", srv.Addr)

	return nil
}
