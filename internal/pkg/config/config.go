package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Pricing   PricingConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
	Report    ReportConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Role"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	Format         string `envconfig:"LOG_FORMAT" default:"json"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// Amounts are decimal strings so they never pass through float64.
type PricingConfig struct {
	TaxRate           string `envconfig:"PRICING_TAX_RATE" default:"0.05"`
	DeliveryFee       string `envconfig:"PRICING_DELIVERY_FEE" default:"40"`
	FreeDeliveryAbove string `envconfig:"PRICING_FREE_DELIVERY_ABOVE" default:"500"`
}

// Empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_CATALOG_TTL" default:"5m"`
}

// Empty Brokers makes the notification relay log instead of publish.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:""`
	Topic   string   `envconfig:"KAFKA_ORDER_STATUS_TOPIC" default:"order-status"`
}

type NotifyConfig struct {
	Enabled      bool          `envconfig:"NOTIFY_ENABLED" default:"true"`
	PollInterval time.Duration `envconfig:"NOTIFY_POLL_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"NOTIFY_BATCH_SIZE" default:"50"`
	MaxAttempts  int           `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"5"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `envconfig:"RATE_LIMIT_LOGIN_RPS" default:"1"`
	LoginBurst int     `envconfig:"RATE_LIMIT_LOGIN_BURST" default:"5"`
}

type ReportConfig struct {
	QueryTimeout time.Duration `envconfig:"REPORT_QUERY_TIMEOUT" default:"10s"`
	TopItems     int           `envconfig:"REPORT_TOP_ITEMS" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			Format:         "json",
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-jwt-signing-only",
			Duration: "1h",
		},
		Cookie: CookieConfig{SameSite: "Lax"},
		Pricing: PricingConfig{
			TaxRate:           "0.05",
			DeliveryFee:       "40",
			FreeDeliveryAbove: "500",
		},
		Kafka: KafkaConfig{Topic: "order-status"},
		Notify: NotifyConfig{
			Enabled:      false,
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  3,
		},
		RateLimit: RateLimitConfig{LoginRPS: 100, LoginBurst: 100},
		Report:    ReportConfig{QueryTimeout: 5 * time.Second, TopItems: 5},
	}
}
