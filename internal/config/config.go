package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Storage      StorageConfig      `toml:"storage"`
	Redis        RedisConfig        `toml:"redis"`
	Payment      PaymentConfig      `toml:"payment"`
	Notification NotificationConfig `toml:"notification"`
	Expiry       ExpiryConfig       `toml:"expiry"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища: postgres или memory (для локального запуска)
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// TTL снапшота настроек в секундах
	SettingsTTL int `toml:"settings_ttl"`
}

// PaymentConfig провайдер платежей: stripe или mock
type PaymentConfig struct {
	Provider        string `toml:"provider"`
	StripeSecretKey string `toml:"stripe_secret_key"`
	MockPrefix      string `toml:"mock_prefix"`
}

// NotificationConfig sink уведомлений: kafka, webhook или log
type NotificationConfig struct {
	Sink        string   `toml:"sink"`
	Brokers     []string `toml:"brokers"`
	TopicPrefix string   `toml:"topic_prefix"`
	WebhookURL  string   `toml:"webhook_url"`
	// Таймаут webhook в секундах
	WebhookTimeout int `toml:"webhook_timeout"`
}

type ExpiryConfig struct {
	Enabled bool `toml:"enabled"`
	// Интервал запуска в секундах
	Interval int `toml:"interval"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Load читает конфигурацию из TOML файла, подтягивает .env и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "properties",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: "postgres"},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			SettingsTTL: 300,
		},
		Payment: PaymentConfig{
			Provider:   "mock",
			MockPrefix: "tx_ok",
		},
		Notification: NotificationConfig{
			Sink:           "log",
			TopicPrefix:    "property.",
			WebhookTimeout: 5,
		},
		Expiry: ExpiryConfig{
			Enabled:  true,
			Interval: 60,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "property-service",
			Path:        "/metrics",
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port: invalid port %d", c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}

	switch c.Payment.Provider {
	case "mock":
	case "stripe":
		if c.Payment.StripeSecretKey == "" {
			return errors.New("payment.stripe_secret_key: required for stripe provider")
		}
	default:
		return fmt.Errorf("payment.provider: unknown provider %q", c.Payment.Provider)
	}

	switch c.Notification.Sink {
	case "log":
	case "kafka":
		if len(c.Notification.Brokers) == 0 {
			return errors.New("notification.brokers: required for kafka sink")
		}
	case "webhook":
		if c.Notification.WebhookURL == "" {
			return errors.New("notification.webhook_url: required for webhook sink")
		}
	default:
		return fmt.Errorf("notification.sink: unknown sink %q", c.Notification.Sink)
	}

	if c.Expiry.Enabled && c.Expiry.Interval <= 0 {
		return fmt.Errorf("expiry.interval: must be positive, got %d", c.Expiry.Interval)
	}

	return nil
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Payment.StripeSecretKey, "STRIPE_SECRET_KEY")
	setInt(&cfg.Server.HTTPPort, "HTTP_PORT")
	setString(&cfg.Notification.WebhookURL, "NOTIFICATION_WEBHOOK_URL")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Notification.Brokers = strings.Split(v, ",")
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
