package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightmail-service/internal/domain/repository"
	"flightmail-service/internal/infrastructure/cache"
	"flightmail-service/internal/infrastructure/config"
	"flightmail-service/internal/infrastructure/llm"
	"flightmail-service/internal/infrastructure/messaging"
	"flightmail-service/internal/infrastructure/oauth"
	"flightmail-service/internal/infrastructure/persistence"
	"flightmail-service/internal/interface/api"
	"flightmail-service/internal/interface/gmail"
	repo "flightmail-service/internal/interface/repository"
	"flightmail-service/internal/usecase"
	"flightmail-service/pkg/flightparser"
	"flightmail-service/pkg/logger"
	"flightmail-service/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flightmail Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	emailRepo, err := repo.NewMongoEmailRepository(ctx, db)
	if err != nil {
		log.Fatal("Failed to set up email repository", "error", err)
	}

	var tripRepo repository.TripRepository
	switch cfg.StoreBackend {
	case config.StoreCosmos:
		log.Info("Using Cosmos DB trip store", "endpoint", cfg.CosmosEndpoint, "emulator", cfg.CosmosUseEmulator)
		tripRepo, err = repo.NewCosmosTripRepository(cfg.CosmosEndpoint, cfg.CosmosDatabase, cfg.CosmosContainer, cfg.CosmosUseEmulator)
	default:
		tripRepo, err = repo.NewMongoTripRepository(ctx, db)
	}
	if err != nil {
		log.Fatal("Failed to set up trip repository", "backend", cfg.StoreBackend, "error", err)
	}

	// Reference data for geocoding and airline names
	var (
		airportRepo repository.AirportRepository
		airlineRepo repository.AirlineRepository
	)
	if cfg.PostgresURI != "" {
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportRepo = repo.NewGormAirportRepository(gormDB)
		airlineRepo = repo.NewGormAirlineRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, airport and airline lookups disabled")
	}
	geocoder := repo.NewAirportGeocoder(airportRepo, repo.NewHTTPGeocoder(cfg.GeocoderURL, cfg.GeocoderToken, log), log)

	// Flight parser with model fallback
	completer, err := llm.NewCompleter(llm.Config{
		Provider:          cfg.Parser.ModelProvider,
		APIKey:            cfg.Parser.ModelAPIKey,
		Model:             cfg.Parser.ModelName,
		BaseURL:           cfg.Parser.ModelBaseURL,
		Timeout:           cfg.Parser.ModelTimeout,
		RequestsPerSecond: cfg.Parser.ModelRequestsPerSecond,
	})
	if err != nil {
		log.Fatal("Failed to set up model backend", "error", err)
	}
	if cfg.Parser.ModelAPIKey == "" {
		log.Warn("MODEL_API_KEY not set, model fallback will report model_unavailable")
	}

	appMetrics := metrics.NewMetrics("flightmail")
	parser := flightparser.NewParser(
		flightparser.WithThresholds(cfg.Parser.SourceConfidenceThreshold, cfg.Parser.GenericConfidenceThreshold),
		flightparser.WithModel(flightparser.NewModelParser(completer,
			flightparser.WithModelTimeout(cfg.Parser.ModelTimeout),
			flightparser.WithMaxBodyChars(cfg.Parser.ModelMaxBodyChars),
			flightparser.WithModelLogger(log),
		)),
		flightparser.WithObserver(appMetrics),
		flightparser.WithLogger(log),
	)

	processorOpts := []usecase.ProcessorOption{
		usecase.WithGeocoder(geocoder),
		usecase.WithMetrics(appMetrics),
	}
	if airlineRepo != nil {
		processorOpts = append(processorOpts, usecase.WithAirlineRepository(airlineRepo))
	}

	var resultCache *cache.RedisResultCache
	if cfg.RedisAddr != "" {
		resultCache = cache.NewRedisResultCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ResultCacheTTL)
		if err := resultCache.Ping(ctx); err != nil {
			log.Warn("Redis unavailable, parse cache disabled", "addr", cfg.RedisAddr, "error", err)
			resultCache.Close()
			resultCache = nil
		} else {
			processorOpts = append(processorOpts, usecase.WithResultCache(resultCache))
		}
	}

	var producer *messaging.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = messaging.NewProducer(cfg.KafkaBrokers, cfg.KafkaTripsTopic, log)
		processorOpts = append(processorOpts, usecase.WithEventPublisher(producer))
	}

	tripProcessor := usecase.NewTripProcessor(parser, emailRepo, tripRepo, log, processorOpts...)

	// Gmail polling is optional; the webhook works without it
	if cfg.GmailRefreshToken != "" {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			"",
			log,
		)

		gmailService, err := gmail.NewGmailService(ctx, gmailOAuth.GetTokenSource(ctx), emailRepo, tripProcessor, log, cfg.GmailPollInterval)
		if err != nil {
			log.Fatal("Failed to create Gmail service", "error", err)
		}
		go gmailService.StartPolling(ctx)
	} else {
		log.Info("GMAIL_REFRESH_TOKEN not set, Gmail polling disabled")
	}

	// Set up HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewInboundHandler(tripProcessor, log), log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Kafka producer close error", "error", err)
		}
	}
	if resultCache != nil {
		resultCache.Close()
	}

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightmail Service stopped")
}
