package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"printshop/cmd"
	httpin "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/eventlog"
	"printshop/internal/adapters/out/kafka"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, configs.Telemetry(), logger)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	gormDB, err := postgres.Open(configs.Database(), logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var redisClient redis.Cmdable
	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr, DB: configs.RedisDB})
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			logger.WarnContext(ctx, "product cache unreachable at start-up", "addr", configs.RedisAddr, "error", pingErr)
		}
		defer client.Close()
		redisClient = client
	}

	publisher := newPublisher(configs, logger)
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, publisher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)

	jobManager.StopAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "failed to flush traces", "error", err)
	}
}

func getConfigs() cmd.Config {
	loadDotEnv()

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBDriver:               os.Getenv("DB_DRIVER"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		SQLitePath:             os.Getenv("SQLITE_PATH"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisDB:                intVariable("REDIS_DB"),
		ProductCacheTTL:        durationVariable("PRODUCT_CACHE_TTL"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		OutboxRelaySchedule:    os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OTLPEndpoint:           os.Getenv("OTLP_ENDPOINT"),
		ServiceName:            os.Getenv("SERVICE_NAME"),
	}
}

// loadDotEnv reads .env when present; variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func intVariable(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return v
}

func durationVariable(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s must be a duration: %v", key, err)
	}
	return v
}

// newPublisher publishes to Kafka when brokers are configured and to the
// application log otherwise.
func newPublisher(configs cmd.Config, logger *slog.Logger) ports.EventPublisher {
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		return kafka.NewPublisher(brokers)
	}
	return eventlog.NewPublisher(logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("Failed to load API description: %v", err)
	}
	e, err := httpin.NewEcho(app.CreateServer(), doc, logger)
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.ErrorContext(shutdownCtx, "HTTP shutdown failed", "error", shutdownErr)
		}
	}()

	if err = e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
