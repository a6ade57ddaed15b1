package main

import (
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pago/internal/db"
	"pago/internal/fraud"
	"pago/internal/gateway"
	"pago/internal/payments"
	"pago/internal/store"
	"pago/internal/webhook"
)

var version = "1.0.0"

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func envInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
	}
	return fallback
}

func envString(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
		fmt.Printf("Invalid %s, defaulting to %v\n", key, fallback)
	}
	return fallback
}

func loadConfig() config {
	cfg := config{
		addr:      envString("ADDR", ":8080"),
		env:       envString("ENV", "development"),
		storeKind: envString("STORE", "memory"),
		db: dbConfig{
			addr:           os.Getenv("DB_ADDR"),
			maxOpenConns:   envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleConns:   envInt("DB_MAX_IDLE_CONNS", 30),
			maxIdleTime:    envString("DB_MAX_IDLE_TIME", "15m"),
			migrationsPath: envString("DB_MIGRATIONS_PATH", "migrations"),
		},
		retryAttempts:  envInt("RETRY_ATTEMPTS", 3),
		retryDelay:     time.Duration(envInt("RETRY_DELAY_MS", 1000)) * time.Millisecond,
		webhookTimeout: time.Duration(envInt("WEBHOOK_TIMEOUT_MS", 5000)) * time.Millisecond,
		kafka: kafkaConfig{
			enabled: envBool("KAFKA_ENABLED", false),
			brokers: strings.Split(envString("KAFKA_BROKERS", "localhost:9092"), ","),
			topic:   envString("KAFKA_TOPIC", "payment-events"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
	}

	if bins := os.Getenv("BLOCKED_BINS"); bins != "" {
		cfg.blockedBINs = strings.Split(bins, ",")
	}
	return cfg
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Transaction store
	var txStore store.TransactionStore
	switch cfg.storeKind {
	case "postgres":
		pool, err := db.New(
			cfg.db.addr,
			cfg.db.maxOpenConns,
			cfg.db.maxIdleConns,
			cfg.db.maxIdleTime,
		)
		if err != nil {
			logger.Fatal(err)
		}
		defer pool.Close()
		logger.Info("database connection pool established")

		if err := runMigrations(cfg.db); err != nil {
			logger.Fatal(err)
		}

		expvar.Publish("database", expvar.Func(func() any {
			return pool.Stats()
		}))

		txStore = store.NewPostgresStore(pool)
	default:
		txStore = store.NewMemoryStore()
	}

	// Fraud policy
	blacklist := fraud.DefaultBlacklist()
	if len(cfg.blockedBINs) > 0 {
		blacklist = fraud.NewBlacklist(cfg.blockedBINs...)
	}
	detector := fraud.NewDetector(blacklist, txStore, logger)

	// Webhook dispatch
	hooks := webhook.NewManager(webhook.NewHTTPSender(), logger, cfg.webhookTimeout)

	var dispatcher gateway.Dispatcher = hooks
	if cfg.kafka.enabled {
		sink := webhook.NewKafkaSink(cfg.kafka.brokers, cfg.kafka.topic, logger)
		defer sink.Close()
		dispatcher = dispatcherGroup{hooks, sink}
		logger.Infow("kafka event sink enabled", "topic", cfg.kafka.topic)
	}

	providers := []payments.Provider{
		payments.NewStripeAdapter(),
		payments.NewPayPalAdapter(),
		payments.NewPixAdapter(),
		payments.NewBoletoAdapter(),
	}

	gw := gateway.New(providers, txStore, detector, dispatcher, logger, gateway.Config{
		RetryAttempts: cfg.retryAttempts,
		RetryDelay:    cfg.retryDelay,
	})

	app := &application{
		config:  cfg,
		gateway: gw,
		hooks:   hooks,
		logger:  logger,
	}

	// Metrics collected at /v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func runMigrations(cfg dbConfig) error {
	m, err := migrate.New("file://"+cfg.migrationsPath, cfg.addr)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
