package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8080"
	defaultLogLevel         = "info"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTTTL           = "12h"
	defaultSourceMode       = SourceREST
	defaultBackendTimeout   = "10s"
	defaultBackendRPS       = "20"
	defaultHotelTimezone    = "Asia/Jakarta"
	defaultCurrencyDecimals = "0"
	defaultPollInterval     = "5m"

	defaultOverdueHighDays      = "2"
	defaultOverdueUrgentDays    = "7"
	defaultStaleHighHours       = "4"
	defaultStaleUrgentHours     = "24"
	defaultFailedPaymentLookbck = "168h"
)

const (
	SourceREST = "rest"
	SourceDB   = "db"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	SourceMode          string
	BackendBaseURL      string
	BackendTimeout      time.Duration
	BackendRPS          float64
	BackendServiceToken string
	DatabaseURL         string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HotelLocation    *time.Location
	CurrencyDecimals int32

	CORSAllowedOrigins []string

	Notify NotifyConfig
}

// NotifyConfig holds the alerting thresholds and the badge polling cadence.
type NotifyConfig struct {
	PollInterval          time.Duration
	OverdueHighDays       int
	OverdueUrgentDays     int
	StaleHighHours        float64
	StaleUrgentHours      float64
	FailedPaymentLookback time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.SourceMode = strings.ToLower(strings.TrimSpace(getEnv("SOURCE_MODE", defaultSourceMode)))
	cfg.BackendBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BACKEND_BASE_URL")), "/")
	cfg.BackendServiceToken = strings.TrimSpace(os.Getenv("BACKEND_SERVICE_TOKEN"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.BackendTimeout, err = parseDurationEnv("BACKEND_TIMEOUT", defaultBackendTimeout); err != nil {
		return nil, err
	}
	if cfg.BackendRPS, err = parseFloatEnv("BACKEND_RPS", defaultBackendRPS); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	decimals, err := parseIntEnv("CURRENCY_DECIMALS", defaultCurrencyDecimals)
	if err != nil {
		return nil, err
	}
	cfg.CurrencyDecimals = int32(decimals)

	tz := strings.TrimSpace(getEnv("HOTEL_TIMEZONE", defaultHotelTimezone))
	cfg.HotelLocation, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid HOTEL_TIMEZONE value %q: %w", tz, err)
	}

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if cfg.Notify, err = loadNotifyConfig(); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadNotifyConfig() (NotifyConfig, error) {
	var (
		n   NotifyConfig
		err error
	)
	if n.PollInterval, err = parseDurationEnv("NOTIFY_POLL_INTERVAL", defaultPollInterval); err != nil {
		return n, err
	}
	if n.OverdueHighDays, err = parseIntEnv("NOTIFY_OVERDUE_HIGH_DAYS", defaultOverdueHighDays); err != nil {
		return n, err
	}
	if n.OverdueUrgentDays, err = parseIntEnv("NOTIFY_OVERDUE_URGENT_DAYS", defaultOverdueUrgentDays); err != nil {
		return n, err
	}
	if n.StaleHighHours, err = parseFloatEnv("NOTIFY_STALE_HIGH_HOURS", defaultStaleHighHours); err != nil {
		return n, err
	}
	if n.StaleUrgentHours, err = parseFloatEnv("NOTIFY_STALE_URGENT_HOURS", defaultStaleUrgentHours); err != nil {
		return n, err
	}
	if n.FailedPaymentLookback, err = parseDurationEnv("NOTIFY_FAILED_PAYMENT_LOOKBACK", defaultFailedPaymentLookbck); err != nil {
		return n, err
	}
	return n, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	switch cfg.SourceMode {
	case SourceREST:
		if cfg.BackendBaseURL == "" {
			return fmt.Errorf("BACKEND_BASE_URL is required when SOURCE_MODE=rest")
		}
		if cfg.BackendTimeout <= 0 {
			return fmt.Errorf("BACKEND_TIMEOUT must be > 0")
		}
		if cfg.BackendRPS <= 0 {
			return fmt.Errorf("BACKEND_RPS must be > 0")
		}
	case SourceDB:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SOURCE_MODE=db")
		}
	default:
		return fmt.Errorf("SOURCE_MODE must be one of: rest, db")
	}
	if cfg.CurrencyDecimals < 0 || cfg.CurrencyDecimals > 4 {
		return fmt.Errorf("CURRENCY_DECIMALS must be between 0 and 4")
	}

	n := cfg.Notify
	if n.PollInterval <= 0 {
		return fmt.Errorf("NOTIFY_POLL_INTERVAL must be > 0")
	}
	if n.OverdueHighDays < 0 || n.OverdueUrgentDays < n.OverdueHighDays {
		return fmt.Errorf("NOTIFY_OVERDUE_URGENT_DAYS must be >= NOTIFY_OVERDUE_HIGH_DAYS >= 0")
	}
	if n.StaleHighHours < 0 || n.StaleUrgentHours < n.StaleHighHours {
		return fmt.Errorf("NOTIFY_STALE_URGENT_HOURS must be >= NOTIFY_STALE_HIGH_HOURS >= 0")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

// IsProduction reports whether the service runs in a prod-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
