package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "GALLERY"

// ServiceConfig holds all configuration for the gallery service.
type ServiceConfig struct {
	Port         string
	AppEnv       string
	LogLevel     string
	SeedOnStart  bool
	DBConfig     DatabaseConfig
	KafkaConfig  KafkaConfig
	SentryConfig SentryConfig
}

// DatabaseConfig describes the photo store connection.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// DSN is used as-is for sqlite and overrides the discrete fields for postgres.
	DSN string
}

// KafkaConfig describes the event bus. An empty broker list disables Kafka.
type KafkaConfig struct {
	Brokers           []string
	GroupPrefix       string
	EventsTopic       string
	LikeRequestsTopic string
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// IsSQLite reports whether the store is backed by sqlite.
func (d DatabaseConfig) IsSQLite() bool { return strings.EqualFold(d.Driver, "sqlite") }

// PostgresDSN returns the key/value DSN accepted by the pgx driver.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// DatabaseURL returns a postgres:// URL for the migration runner.
func (d DatabaseConfig) DatabaseURL() string {
	if strings.HasPrefix(d.DSN, "postgres://") || strings.HasPrefix(d.DSN, "postgresql://") {
		return d.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Load reads configuration from an optional .env file and GALLERY_* environment variables.
func Load() (*ServiceConfig, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &ServiceConfig{
		Port:        normalizePort(v.GetString("service_port")),
		AppEnv:      v.GetString("app_env"),
		LogLevel:    v.GetString("log_level"),
		SeedOnStart: v.GetBool("seed.on_start"),
		DBConfig: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			DSN:      v.GetString("db.dsn"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:           splitList(v.GetString("kafka.brokers")),
			GroupPrefix:       v.GetString("kafka.group_prefix"),
			EventsTopic:       v.GetString("kafka.topic_events"),
			LikeRequestsTopic: v.GetString("kafka.topic_like_requests"),
		},
		SentryConfig: SentryConfig{
			DSN: v.GetString("sentry.dsn"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("service_port", ":8080")
	v.SetDefault("log_level", "")
	v.SetDefault("seed.on_start", false)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "gallery")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.dsn", "")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.group_prefix", "")
	v.SetDefault("kafka.topic_events", "gallery.events")
	v.SetDefault("kafka.topic_like_requests", "gallery.like-requests")
	v.SetDefault("sentry.dsn", "")
}

func (c *ServiceConfig) validate() error {
	switch c.DBConfig.Driver {
	case "postgres":
	case "sqlite":
		if c.DBConfig.DSN == "" {
			return fmt.Errorf("GALLERY_DB_DSN is required when GALLERY_DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBConfig.Driver)
	}
	return nil
}

func normalizePort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
