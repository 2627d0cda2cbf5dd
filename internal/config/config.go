package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/lesson-booking/internal/timezone"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env        string
	ServerPort string

	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	App      AppConfig
	CORS     CORSConfig
	Log      LogConfig
	SMTP     SMTPConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Tracing  TracingConfig
	Booking  BookingConfig

	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Driver string
	URL    string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AdminConfig seeds the single admin account at startup.
type AdminConfig struct {
	Username string
	Password string
}

type AppConfig struct {
	Timezone string
	Locale   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type SMTPConfig struct {
	Host string
	Port int
	From string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	SlotsTTL time.Duration
}

type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	SamplingRatio float64
}

// BookingConfig holds the opt-in rule switches. All default to off.
type BookingConfig struct {
	StrictStatus         bool
	PreventDoubleBooking bool
	DedupeSlots          bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:        v.GetString("ENV"),
		ServerPort: v.GetString("SERVER_PORT"),

		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			URL:    v.GetString("DATABASE_URL"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		App: AppConfig{
			Timezone: v.GetString("APP_TIMEZONE"),
			Locale:   v.GetString("APP_LOCALE"),
		},
		CORS: CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		SMTP: SMTPConfig{
			Host: v.GetString("SMTP_HOST"),
			Port: v.GetInt("SMTP_PORT"),
			From: v.GetString("SMTP_FROM"),
		},
		Kafka: KafkaConfig{
			Brokers: splitAndTrim(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			SlotsTTL: parseDuration(v.GetString("SLOTS_CACHE_TTL"), time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:       v.GetBool("OTEL_ENABLED"),
			Endpoint:      v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			SamplingRatio: v.GetFloat64("OTEL_SAMPLING_RATIO"),
		},
		Booking: BookingConfig{
			StrictStatus:         v.GetBool("BOOKING_STRICT_STATUS"),
			PreventDoubleBooking: v.GetBool("BOOKING_PREVENT_DOUBLE_BOOKING"),
			DedupeSlots:          v.GetBool("AVAILABILITY_DEDUPE_SLOTS"),
		},
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("SERVER_PORT", "8080")

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_URL", "booking.db")

	v.SetDefault("JWT_SECRET", "changeme")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetDefault("APP_TIMEZONE", "Europe/Amsterdam")
	v.SetDefault("APP_LOCALE", "nl")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 25)
	v.SetDefault("SMTP_FROM", "")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "lesson-bookings")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SLOTS_CACHE_TTL", "1m")

	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SAMPLING_RATIO", 1.0)

	v.SetDefault("BOOKING_STRICT_STATUS", false)
	v.SetDefault("BOOKING_PREVENT_DOUBLE_BOOKING", false)
	v.SetDefault("AVAILABILITY_DEDUPE_SLOTS", false)
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if !timezone.IsValid(c.App.Timezone) {
		return fmt.Errorf("unknown APP_TIMEZONE %q", c.App.Timezone)
	}

	if c.Env == EnvProduction && (c.JWT.Secret == "" || c.JWT.Secret == "changeme") {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
