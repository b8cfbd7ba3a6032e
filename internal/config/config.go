package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Attendance AttendanceConfig
	Alerts     AlertsConfig
	Server     ServerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	CookieName       string
	CookieSecure     bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL []string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginRequests int
	LoginWindow   time.Duration
}

type AttendanceConfig struct {
	GracePeriod time.Duration
}

type AlertsConfig struct {
	Enabled  bool
	AMQPURL  string
	Queue    string
	Interval time.Duration
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using process environment", "error", err)
	}

	var errs []error
	config := &Config{}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432, &errs),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: getEnvInt("DB_MAX_CONNS", 25, &errs),
		MinConns: getEnvInt("DB_MIN_CONNS", 5, &errs),
	}

	config.App = AppConfig{
		Port:        getEnvInt("APP_PORT", 8080, &errs),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnvSlice("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		CookieName:       getEnv("JWT_COOKIE_NAME", "jwt"),
		CookieSecure:     getEnvBool("JWT_COOKIE_SECURE", false, &errs),
	}
	if _, err := time.ParseDuration(config.JWT.AccessExpiration); err != nil {
		errs = append(errs, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err))
	}

	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0, &errs),
	}

	config.RateLimit = RateLimitConfig{
		LoginRequests: getEnvInt("RATE_LIMIT_LOGIN_REQUESTS", 5, &errs),
		LoginWindow:   getEnvDuration("RATE_LIMIT_LOGIN_WINDOW", time.Minute, &errs),
	}

	config.Attendance = AttendanceConfig{
		GracePeriod: time.Duration(getEnvInt("ATTENDANCE_GRACE_MINUTES", 0, &errs)) * time.Minute,
	}

	config.Alerts = AlertsConfig{
		Enabled:  getEnvBool("ALERTS_ENABLED", false, &errs),
		AMQPURL:  getEnv("AMQP_URL", ""),
		Queue:    getEnv("ALERTS_QUEUE", "attendance.alerts"),
		Interval: getEnvDuration("ALERTS_INTERVAL", 15*time.Minute, &errs),
	}

	config.Server = ServerConfig{
		ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second, &errs),
		WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second, &errs),
		IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second, &errs),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Alerts.Enabled && c.Alerts.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required when ALERTS_ENABLED is true")
	}
	if c.RateLimit.LoginRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_LOGIN_REQUESTS must be positive")
	}
	if c.Attendance.GracePeriod < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_MINUTES must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL onto slog levels. Unknown values fall back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	var result []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}
