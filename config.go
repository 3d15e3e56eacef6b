package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/database"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/EkeneDeProgram/909ineFoods/sender"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the API.
type Config struct {
	Port   string
	AppEnv string

	Postgres database.PostgresConfig

	JWTSecret          string
	SessionTTL         time.Duration
	CodeTTL            time.Duration
	DefaultPhoneRegion string
	RedisURL           string

	Notifier        string
	SMTP            sender.SMTPConfig
	NotificationSQS string

	EventBus            string
	OrderEventsTopicARN string
	KafkaBrokers        []string
	KafkaOrderTopic     string

	ImageBucket       string
	ImageUploadExpiry time.Duration

	CategoriesFile string
	AllowedOrigins []string
	CookieSecure   bool
	CookieDomain   string

	AuthRatePerMinute int
	AuthRateBurst     int

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
	UseSecrets          bool
}

// LoadConfig reads configuration from the environment (and .env when
// present) with optional Secrets Manager override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, err := getDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	codeTTL, err := getDuration("VERIFICATION_CODE_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	uploadExpiry, err := getDuration("IMAGE_UPLOAD_EXPIRY", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8000"),
		AppEnv: getEnv("APP_ENV", "development"),
		Postgres: database.PostgresConfig{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Lagos"),
		},
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionTTL:         sessionTTL,
		CodeTTL:            codeTTL,
		DefaultPhoneRegion: getEnv("DEFAULT_PHONE_REGION", "NG"),
		RedisURL:           os.Getenv("REDIS_URL"),
		Notifier:           strings.ToLower(getEnv("NOTIFIER", "log")),
		SMTP: sender.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			FromName: getEnv("SMTP_SENDER_NAME", "909ineFoods"),
		},
		NotificationSQS:     os.Getenv("NOTIFICATION_SQS_QUEUE_URL"),
		EventBus:            strings.ToLower(os.Getenv("EVENT_BUS")),
		OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
		KafkaBrokers:        splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:     getEnv("KAFKA_ORDER_TOPIC", "orders.placed"),
		ImageBucket:         os.Getenv("IMAGE_BUCKET"),
		ImageUploadExpiry:   uploadExpiry,
		CategoriesFile:      os.Getenv("CATEGORIES_FILE"),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		CookieSecure:        getBool("COOKIE_SECURE", false),
		CookieDomain:        os.Getenv("COOKIE_DOMAIN"),
		AuthRatePerMinute:   getInt("AUTH_RATE_PER_MINUTE", 30),
		AuthRateBurst:       getInt("AUTH_RATE_BURST", 10),
		CloudWatchEnabled:   getBool("CLOUDWATCH_ENABLED", false),
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "909ineFoods"),
		CloudWatchLogGroup:  os.Getenv("CLOUDWATCH_LOG_GROUP"),
		UseSecrets:          getBool("AWS_USE_SECRETS", false),
	}

	if cfg.UseSecrets {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			cfg.applySecrets(context.Background(), aws_pkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type secretReader interface {
	GetSecret(ctx context.Context, name string) (string, error)
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

// applySecrets overrides DB credentials and the JWT secret from Secrets Manager.
func (c *Config) applySecrets(ctx context.Context, sm secretReader) {
	if m, err := sm.GetSecretMap(ctx, "909inefoods/DB_CREDENTIALS"); err == nil {
		override := func(dst *string, key string) {
			if v := m[key]; v != "" {
				*dst = v
			}
		}
		override(&c.Postgres.User, "POSTGRES_USER")
		override(&c.Postgres.Password, "POSTGRES_PASSWORD")
		override(&c.Postgres.DBName, "POSTGRES_DB")
		override(&c.Postgres.Host, "POSTGRES_HOST")
		override(&c.Postgres.Port, "POSTGRES_PORT")
	}
	if v, err := sm.GetSecret(ctx, "909inefoods/JWT_SECRET"); err == nil && v != "" {
		c.JWTSecret = v
	}
}

func (c *Config) validate() error {
	p := c.Postgres
	if p.User == "" || p.Password == "" || p.DBName == "" || p.Host == "" {
		return fmt.Errorf("database config incomplete")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET not set")
	}
	switch c.Notifier {
	case "smtp", "sqs", "log":
	default:
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}
	// the log notifier writes verification codes to the log stream
	if c.Notifier == "log" && c.AppEnv == "production" {
		return fmt.Errorf("NOTIFIER=log is not allowed when APP_ENV=production")
	}
	switch c.EventBus {
	case "", "sns", "kafka":
	default:
		return fmt.Errorf("unknown EVENT_BUS %q", c.EventBus)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "/")); p != "" {
			out = append(out, p)
		}
	}
	return out
}
