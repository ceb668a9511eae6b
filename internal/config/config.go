package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Channel  ChannelConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port     int
	Env      string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// JWTConfig holds JWT configuration for the report API.
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// ChannelConfig holds the chat platform's OAuth2 push credentials.
type ChannelConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	PushURL      string
}

type AuthConfig struct {
	// AdminKeyHash is a bcrypt hash of the shared admin key.
	AdminKeyHash string
}

func Load() (*Config, error) {
	// A missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		Timezone: getEnv("TIMEZONE", "Asia/Taipei"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_bot"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	config.Redis = RedisConfig{
		Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
		Password:   getEnv("REDIS_PASSWORD", ""),
		DB:         redisDB,
		SessionTTL: sessionTTL,
	}

	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	config.Channel = ChannelConfig{
		ClientID:     getEnv("CHANNEL_CLIENT_ID", ""),
		ClientSecret: getEnv("CHANNEL_CLIENT_SECRET", ""),
		TokenURL:     getEnv("CHANNEL_TOKEN_URL", ""),
		PushURL:      getEnv("CHANNEL_PUSH_URL", ""),
	}

	config.Auth = AuthConfig{
		AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Auth.AdminKeyHash == "" {
		return fmt.Errorf("ADMIN_KEY_HASH is required")
	}
	return nil
}

// DatabaseURL builds the pgx connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.SSLMode)
}

// PushEnabled reports whether channel push credentials are configured.
func (c *Config) PushEnabled() bool {
	return c.Channel.ClientID != "" && c.Channel.ClientSecret != "" &&
		c.Channel.TokenURL != "" && c.Channel.PushURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
