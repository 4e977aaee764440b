package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (DB connection for the postgres driver, etc.)
// - default: Values common across all environments (port, timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	CapacityPolicyHashed = "hashed"
	CapacityPolicyFixed  = "fixed"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	DB      DBConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	Broker  BrokerConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"4000"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`
}

// DBConfig is only consulted when STORE_DRIVER=postgres.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CatalogConfig struct {
	CapacityPolicy  string `envconfig:"CATALOG_CAPACITY_POLICY" default:"hashed"`
	DefaultCapacity int    `envconfig:"CATALOG_DEFAULT_CAPACITY" default:"5"`
	CapacityMin     int    `envconfig:"CATALOG_CAPACITY_MIN" default:"1"`
	CapacityMax     int    `envconfig:"CATALOG_CAPACITY_MAX" default:"10"`
}

// RedisConfig enables the catalog cache when Addr is set.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"30s"`
	Prefix   string        `envconfig:"CACHE_PREFIX" default:"catalog"`
}

// BrokerConfig enables RabbitMQ publishing when URL is set.
type BrokerConfig struct {
	URL   string `envconfig:"RABBITMQ_URL"`
	Queue string `envconfig:"BROKER_QUEUE" default:"booking.created"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.Password == "" || c.DB.DBName == "" {
			return fmt.Errorf("%w: DB_USER, DB_PASSWORD and DB_NAME are required for the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.Store.Driver)
	}

	switch strings.ToLower(c.Catalog.CapacityPolicy) {
	case CapacityPolicyFixed:
		if c.Catalog.DefaultCapacity < 0 {
			return fmt.Errorf("%w: CATALOG_DEFAULT_CAPACITY cannot be negative", ErrInvalidConfig)
		}
	case CapacityPolicyHashed:
		if c.Catalog.CapacityMin < 0 || c.Catalog.CapacityMax < c.Catalog.CapacityMin {
			return fmt.Errorf("%w: CATALOG_CAPACITY_MIN/MAX out of range", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown CATALOG_CAPACITY_POLICY %q", ErrInvalidConfig, c.Catalog.CapacityPolicy)
	}
	return nil
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win over the file
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
			MaxConns: 20,
		},
		Catalog: CatalogConfig{
			CapacityPolicy:  CapacityPolicyHashed,
			DefaultCapacity: 5,
			CapacityMin:     1,
			CapacityMax:     10,
		},
		Redis: RedisConfig{
			CacheTTL: 30 * time.Second,
			Prefix:   "catalog",
		},
		Broker: BrokerConfig{
			Queue: "booking.created",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
	}
}
