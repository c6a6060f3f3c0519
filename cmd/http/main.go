package main

import (
	"context"
	"log"

	"github.com/hilthontt/tripsync/internal/application/usecases/collaboration"
	"github.com/hilthontt/tripsync/internal/application/usecases/itinerary"
	"github.com/hilthontt/tripsync/internal/application/usecases/trip"
	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/ai"
	"github.com/hilthontt/tripsync/internal/infrastructure/auth"
	"github.com/hilthontt/tripsync/internal/infrastructure/configs"
	"github.com/hilthontt/tripsync/internal/infrastructure/events"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/messaging"
	"github.com/hilthontt/tripsync/internal/infrastructure/ratelimiter"
	memrepo "github.com/hilthontt/tripsync/internal/infrastructure/repository"
	"github.com/hilthontt/tripsync/internal/infrastructure/tracing"
	"github.com/hilthontt/tripsync/internal/infrastructure/ws"
	"github.com/hilthontt/tripsync/internal/persistence/db"
	mongorepo "github.com/hilthontt/tripsync/internal/persistence/repository"
	"github.com/hilthontt/tripsync/internal/presentation/api"
	"github.com/hilthontt/tripsync/internal/presentation/handler/collaborations"
	"github.com/hilthontt/tripsync/internal/presentation/handler/health"
	itineraryHandler "github.com/hilthontt/tripsync/internal/presentation/handler/itinerary"
	"github.com/hilthontt/tripsync/internal/presentation/handler/realtime"
	"github.com/hilthontt/tripsync/internal/presentation/handler/trips"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	serviceName = "tripsync-api"
)

type stores struct {
	trips     domain.TripRepository
	soloTrips domain.SoloTripRepository
	users     domain.UserRepository
	audit     domain.TripAuditRepository
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bootstrap := zap.Must(zap.NewProduction()).Sugar()
	defer bootstrap.Sync()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})
	if err != nil {
		bootstrap.Fatalw("failed to initialize the logger", "error", err)
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName: serviceName,
			Environment: cfg.Tracing.Environment,
			Exporter:    cfg.Tracing.Exporter,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			bootstrap.Fatalw("failed to initialize the tracer", "error", err)
		}
		defer shutdown(context.Background())
	}

	checks := map[string]health.Check{}

	var st stores
	switch cfg.Store.Driver {
	case configs.StoreDriverMongo:
		mongoCfg := &db.MongoConfig{
			URI:               cfg.Mongo.URI,
			Database:          cfg.Mongo.Database,
			ConnectionTimeout: cfg.Mongo.ConnectionTimeout,
		}
		client, err := db.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			bootstrap.Fatalw("failed to connect to mongodb", "error", err)
		}
		defer db.DisconnectMongo(context.Background(), client)

		database := db.GetDatabase(client, mongoCfg)
		if err := mongorepo.EnsureIndexes(ctx, database); err != nil {
			bootstrap.Fatalw("failed to create indexes", "error", err)
		}

		st = stores{
			trips:     mongorepo.NewTripRepository(database),
			soloTrips: mongorepo.NewSoloTripRepository(database),
			users:     mongorepo.NewUserRepository(database),
			audit:     mongorepo.NewTripAuditLogRepository(database),
		}
		checks["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}
	case configs.StoreDriverMemory:
		seed := make([]domain.User, 0, len(cfg.Auth.DevUsers))
		for _, u := range cfg.Auth.DevUsers {
			seed = append(seed, domain.User{ID: u.ID, Name: u.Name})
		}

		st = stores{
			trips:     memrepo.NewTripRepository(),
			soloTrips: memrepo.NewSoloTripRepository(),
			users:     memrepo.NewUserRepository(seed...),
			audit:     memrepo.NewTripAuditLogRepository(),
		}
		bootstrap.Warnw("running on the in-memory store, data is lost on restart", "users", len(seed))
	}

	limiterOpts := ratelimiter.Options{
		Context:          ctx,
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	}
	if cfg.RateLimiter.Store == configs.LimiterStoreRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiterOpts.Cache = ratelimiter.NewRedis(redisClient)
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	rl := ratelimiter.New(limiterOpts)
	defer rl.Close()

	publisher := events.NewNopTripPublisher()
	if cfg.Messaging.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.Messaging.URI)
		if err != nil {
			bootstrap.Fatalw("failed to connect to rabbitmq", "error", err)
		}
		defer rabbitmq.Close()

		bootstrap.Infow("rabbitmq connection established")

		publisher = events.NewTripPublisher(rabbitmq)

		consumer := events.NewTripConsumer(rabbitmq, st.audit, logger)
		go func() {
			if err := consumer.Listen(ctx); err != nil {
				bootstrap.Errorw("trip consumer stopped", "error", err)
			}
		}()
	}

	hub := ws.NewHub(logger)
	go hub.Run(ctx)
	defer hub.Shutdown()

	var generator ai.Generator
	if cfg.AI.Enabled {
		generator = ai.NewGeminiClient(ai.Config{
			Endpoint:    cfg.AI.Endpoint,
			Model:       cfg.AI.Model,
			APIKey:      cfg.AI.APIKey,
			Timeout:     cfg.AI.Timeout,
			MaxAttempts: cfg.AI.MaxAttempts,
		})
	}

	collaborationUseCase := collaboration.NewUseCase(st.trips, st.users, hub, publisher, logger, collaboration.Options{
		CodeAttempts: cfg.Collaboration.CodeAttempts,
	})
	tripUseCase := trip.NewUseCase(st.soloTrips, logger)
	itineraryUseCase := itinerary.NewUseCase(generator, logger)

	clientOpts := ws.ClientOptions{
		SendBuffer:     cfg.Hub.SendBuffer,
		PingInterval:   cfg.Hub.PingInterval,
		PongWait:       cfg.Hub.PongWait,
		MaxMessageSize: cfg.Hub.MaxMessageSize,
	}
	dispatcher := realtime.NewDispatcher(
		hub,
		collaborationUseCase,
		ratelimiter.NewWindowLimiter(cfg.Hub.EventsPerWindow, cfg.Hub.EventWindow),
		logger,
	)

	handlers := api.Handlers{
		Collaborations: collaborations.NewHandler(collaborationUseCase, logger),
		Trips:          trips.NewHandler(tripUseCase, logger),
		Itinerary:      itineraryHandler.NewHandler(itineraryUseCase, logger),
		Realtime:       realtime.NewHandler(hub, dispatcher, clientOpts, cfg.HTTP.AllowedOrigins, logger),
		Health:         health.NewHandler(checks),
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	app := api.NewApplication(*cfg, handlers, logger, bootstrap, rl, verifier)

	logger.Info(logging.General, logging.Startup, "starting server", map[logging.ExtraKey]any{
		logging.AppName: serviceName,
		"Store":         cfg.Store.Driver,
		"AI":            cfg.AI.Enabled,
		"Messaging":     cfg.Messaging.Enabled,
	})

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		bootstrap.Errorw("server stopped with error", "error", err)
	}
}
