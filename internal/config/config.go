package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Mail          MailConfig
	Storage       StorageConfig
	RabbitMQ      RabbitMQConfig
	Logging       LoggingConfig
	Reset         ResetConfig
	GeminiAPIKey  string
	StoreDriver   string
	PublicBaseURL string
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryDay int
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether SMTP delivery is configured.
func (c *MailConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func (c *StorageConfig) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

type RabbitMQConfig struct {
	URL             string
	PrefetchCount   int
	QueueDurable    bool
	QueueAutoDelete bool
	EventsQueue     string
	MatchesQueue    string
}

func (c *RabbitMQConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type LoggingConfig struct {
	Level         string
	Format        string
	IncludeCaller bool
}

type ResetConfig struct {
	TokenTTL time.Duration
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "production")
	viper.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)

	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)

	viper.SetDefault("JWT_ACCESS_EXPIRY_DAY", 7)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "Fourth Mouse <no-reply@fourthmouse.app>")
	viper.SetDefault("MINIO_BUCKET", "pictures")

	viper.SetDefault("RABBITMQ_PREFETCH_COUNT", 10)
	viper.SetDefault("RABBITMQ_QUEUE_DURABLE", true)
	viper.SetDefault("RABBITMQ_EVENTS_QUEUE", "account.events")
	viper.SetDefault("RABBITMQ_MATCHES_QUEUE", "match.computed")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("RESET_TOKEN_TTL", time.Hour)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
}

func readEnv() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Host:     viper.GetString("DB_HOST"),
		Port:     viper.GetInt("DB_PORT"),
		User:     viper.GetString("DB_USER"),
		Password: viper.GetString("DB_PASSWORD"),
		DBName:   viper.GetString("DB_NAME"),
		SSLMode:  viper.GetString("DB_SSL_MODE"),
	}
}

// LoadDatabase reads only the database settings, for tools that do not
// serve requests.
func LoadDatabase() (*DatabaseConfig, error) {
	readEnv()
	cfg := databaseFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	readEnv()

	config := &Config{
		Server: ServerConfig{
			Host:            viper.GetString("SERVER_HOST"),
			Port:            viper.GetInt("SERVER_PORT"),
			Env:             viper.GetString("ENV"),
			ReadTimeout:     viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: viper.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: databaseFromEnv(),
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryDay: viper.GetInt("JWT_ACCESS_EXPIRY_DAY"),
		},
		Mail: MailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			PublicURL: viper.GetString("MINIO_PUBLIC_URL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:             viper.GetString("RABBITMQ_URL"),
			PrefetchCount:   viper.GetInt("RABBITMQ_PREFETCH_COUNT"),
			QueueDurable:    viper.GetBool("RABBITMQ_QUEUE_DURABLE"),
			QueueAutoDelete: viper.GetBool("RABBITMQ_QUEUE_AUTO_DELETE"),
			EventsQueue:     viper.GetString("RABBITMQ_EVENTS_QUEUE"),
			MatchesQueue:    viper.GetString("RABBITMQ_MATCHES_QUEUE"),
		},
		Logging: LoggingConfig{
			Level:         viper.GetString("LOG_LEVEL"),
			Format:        viper.GetString("LOG_FORMAT"),
			IncludeCaller: viper.GetBool("LOG_INCLUDE_CALLER"),
		},
		Reset: ResetConfig{
			TokenTTL: viper.GetDuration("RESET_TOKEN_TTL"),
		},
		GeminiAPIKey:  viper.GetString("GEMINI_API_KEY"),
		StoreDriver:   strings.ToLower(viper.GetString("STORE_DRIVER")),
		PublicBaseURL: strings.TrimRight(viper.GetString("PUBLIC_BASE_URL"), "/"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.JWT.AccessExpiryDay <= 0 {
		return fmt.Errorf("JWT access expiry must be positive")
	}
	if c.Reset.TokenTTL <= 0 {
		return fmt.Errorf("reset token TTL must be positive")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

func (c *ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetURL returns the postgres:// form used by the migration tool.
func (c *DatabaseConfig) GetURL() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		User:   url.UserPassword(c.User, c.Password),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
