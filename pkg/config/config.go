package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// ErrMissingJWTSecret is returned when no signing key is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	ResetDB   bool
	SeedData  bool

	Database      DatabaseConfig
	Redis         RedisConfig
	Cache         CacheConfig
	JWT           JWTConfig
	CORS          CORSConfig
	Log           LogConfig
	Uploads       UploadsConfig
	Exports       ExportsConfig
	SMTP          SMTPConfig
	Notifications NotificationsConfig
	Bootstrap     []BootstrapAccount
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles Redis backed read caching.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// UploadsConfig controls profile picture storage.
type UploadsConfig struct {
	Dir          string
	MaxBytes     int64
	AllowedMIMEs []string
}

// ExportsConfig configures rendered report files and their download links.
type ExportsConfig struct {
	Dir             string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// SMTPConfig holds outbound mail settings. An empty host or user means mail is only logged.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NotificationsConfig tunes the background notification workers.
type NotificationsConfig struct {
	Workers         int
	BufferSize      int
	MaxRetries      int
	RetryDelay      time.Duration
	DrainTimeout    time.Duration
	BulkConcurrency int
}

// BootstrapAccount describes a staff login created at startup when absent.
type BootstrapAccount struct {
	Username string
	Password string
	Role     string
	Name     string
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
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.ResetDB = v.GetBool("RESET_DB")
	cfg.SeedData = v.GetBool("SEED_DATA")

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	origins := splitAndTrim(v.GetString("FRONTEND_URLS"))
	for _, origin := range splitAndTrim(v.GetString("FRONTEND_URL")) {
		if !contains(origins, origin) {
			origins = append(origins, origin)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: origins}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxUpload := v.GetInt64("UPLOAD_MAX_BYTES")
	if maxUpload <= 0 {
		maxUpload = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		Dir:          v.GetString("UPLOADS_DIR"),
		MaxBytes:     maxUpload,
		AllowedMIMEs: splitAndTrim(v.GetString("UPLOAD_ALLOWED_MIME_TYPES")),
	}

	cfg.Exports = ExportsConfig{
		Dir:             v.GetString("EXPORTS_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), time.Hour),
	}
	if cfg.Exports.SignedURLSecret == "" {
		cfg.Exports.SignedURLSecret = cfg.JWT.Secret
	}

	cfg.SMTP = SMTPConfig{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		User:     v.GetString("SMTP_USER"),
		Password: v.GetString("SMTP_PASSWORD"),
		From:     v.GetString("SMTP_FROM"),
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	cfg.Notifications = NotificationsConfig{
		Workers:         v.GetInt("NOTIFY_WORKERS"),
		BufferSize:      v.GetInt("NOTIFY_BUFFER"),
		MaxRetries:      v.GetInt("NOTIFY_RETRIES"),
		RetryDelay:      parseDuration(v.GetString("NOTIFY_RETRY_DELAY"), 2*time.Second),
		DrainTimeout:    parseDuration(v.GetString("NOTIFY_DRAIN_TIMEOUT"), 10*time.Second),
		BulkConcurrency: v.GetInt("BULK_EMAIL_CONCURRENCY"),
	}

	cfg.Bootstrap = parseBootstrapAccounts(v.GetString("BOOTSTRAP_ACCOUNTS"))

	return cfg
}

// Validate reports configuration that must stop the process from booting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// CanReset reports whether RESET_DB may drop tables in the current environment.
func (c *Config) CanReset() bool {
	return c.ResetDB && c.Env == EnvDevelopment
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("RESET_DB", false)
	v.SetDefault("SEED_DATA", true)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "student_management")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "student-management-system")

	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("FRONTEND_URLS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOADS_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("UPLOAD_ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/gif,image/webp")

	v.SetDefault("EXPORTS_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "1h")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("NOTIFY_WORKERS", 2)
	v.SetDefault("NOTIFY_BUFFER", 64)
	v.SetDefault("NOTIFY_RETRIES", 2)
	v.SetDefault("NOTIFY_RETRY_DELAY", "2s")
	v.SetDefault("NOTIFY_DRAIN_TIMEOUT", "10s")
	v.SetDefault("BULK_EMAIL_CONCURRENCY", 5)

	v.SetDefault("BOOTSTRAP_ACCOUNTS", "admin:admin123:admin:System Administrator,teacher:teacher123:teacher:John Doe")
}

// parseBootstrapAccounts reads "username:password:role:Display Name" entries separated by commas.
func parseBootstrapAccounts(raw string) []BootstrapAccount {
	entries := splitAndTrim(raw)
	accounts := make([]BootstrapAccount, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 4)
		if len(parts) < 3 {
			continue
		}
		account := BootstrapAccount{
			Username: strings.TrimSpace(parts[0]),
			Password: parts[1],
			Role:     strings.ToLower(strings.TrimSpace(parts[2])),
		}
		if len(parts) == 4 {
			account.Name = strings.TrimSpace(parts[3])
		}
		if account.Username == "" || account.Password == "" {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
