package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig               `mapstructure:"server"`
	Storage    StorageConfig              `mapstructure:"storage"`
	Database   DatabaseConfig             `mapstructure:"database"`
	Redis      RedisConfig                `mapstructure:"redis"`
	JWT        JWTConfig                  `mapstructure:"jwt"`
	AES        AESConfig                  `mapstructure:"aes"`
	Log        LogConfig                  `mapstructure:"log"`
	Router     RouterConfig               `mapstructure:"router"`
	Connectors map[string]ConnectorConfig `mapstructure:"connectors"`
	Kafka      KafkaConfig                `mapstructure:"kafka"`
	Telemetry  TelemetryConfig            `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Driver       string `mapstructure:"driver"`        // postgres, memory
	SeedMerchant string `mapstructure:"seed_merchant"` // memory only: merchant id created at startup
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addrs    []string `mapstructure:"addrs"` // cluster nodes; overrides host/port
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key, protects connector credentials
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// RouterConfig tunes the orchestration core.
type RouterConfig struct {
	ConnectorTimeout time.Duration `mapstructure:"connector_timeout"` // used when a connector declares none
	LockTTL          time.Duration `mapstructure:"lock_ttl"`
	RateLimit        int64         `mapstructure:"rate_limit"` // operations per merchant per minute, 0 disables
}

// ConnectorConfig is the per-connector endpoint configuration.
type ConnectorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	APIKey  string        `mapstructure:"api_key"` // memory only: seed merchant credentials
	Key1    string        `mapstructure:"key1"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP HTTP endpoint, host:port
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PAYROUTER_.
// Nested keys use underscore: PAYROUTER_DATABASE_HOST, PAYROUTER_ROUTER_LOCK_TTL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.seed_merchant", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_router")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "payment-router")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("router.connector_timeout", "30s")
	v.SetDefault("router.lock_ttl", "60s")
	v.SetDefault("router.rate_limit", 120)
	v.SetDefault("connectors.stripe.base_url", "https://api.stripe.com")
	v.SetDefault("connectors.stripe.timeout", "30s")
	v.SetDefault("connectors.checkout.base_url", "https://api.sandbox.checkout.com")
	v.SetDefault("connectors.checkout.timeout", "30s")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "payment.status.changed")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4318")
	v.SetDefault("telemetry.service_name", "payment-router")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PAYROUTER_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PAYROUTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional, env vars can suffice
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
