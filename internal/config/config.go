package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/corray333/backend-labs/meals/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MustInit loads .env and config.yaml into viper and installs the default logger.
// Both files are optional; MEALS_ environment variables override config keys,
// e.g. MEALS_SERVER_HTTP_PORT for server.http.port.
func MustInit() {
	if err := Load(""); err != nil {
		panic("error while loading config: " + err.Error())
	}
	SetupLogger()
}

// Load reads configuration. An empty configFile searches /etc/meals-svc and the working directory.
func Load(configFile string) error {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	SetDefaults()

	viper.SetEnvPrefix("MEALS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/meals-svc")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

// SetDefaults registers the value of every key the service reads.
func SetDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("app.currency", "USD")

	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("server.http.read_header_timeout", 5*time.Second)
	viper.SetDefault("server.http.read_timeout", 15*time.Second)
	viper.SetDefault("server.http.write_timeout", 15*time.Second)
	viper.SetDefault("server.http.idle_timeout", 60*time.Second)
	viper.SetDefault("server.http.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.http.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.http.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("server.http.cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-Id"})
	viper.SetDefault("server.http.cors.max_age", 300)

	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.max_conns", 10)
	viper.SetDefault("postgres.migrate_on_start", true)

	viper.SetDefault("rabbitmq.enabled", true)
	viper.SetDefault("rabbitmq.host", "rabbitmq")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.exchange", "")
	viper.SetDefault("rabbitmq.order_created.queue", "meals.order.created")
	viper.SetDefault("rabbitmq.order_created.routing_key", "meals.order.created")
	viper.SetDefault("rabbitmq.order_created.max_retries", 5)
	viper.SetDefault("rabbitmq.outbox.poll_interval_seconds", 10)
	viper.SetDefault("rabbitmq.outbox.batch_size", 100)
	viper.SetDefault("rabbitmq.outbox.publish_concurrency", 4)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.service_name", "meals-svc")
	viper.SetDefault("otel.jaeger.endpoint", "http://jaeger:14268/api/traces")
}

func SetupLogger() {
	handler := logger.NewHandler(&slog.HandlerOptions{
		Level: logger.ParseLevel(viper.GetString("log.level")),
	})
	log := slog.New(handler)
	slog.SetDefault(log)
}
