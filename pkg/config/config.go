package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Password     PasswordConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GACHPALA_APP_ENV" required:"true"`
	Port         string `envconfig:"GACHPALA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GACHPALA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GACHPALA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"GACHPALA_DB_DSN"`

	Host     string `envconfig:"GACHPALA_DB_HOST"`
	Port     int    `envconfig:"GACHPALA_DB_PORT" default:"5432"`
	User     string `envconfig:"GACHPALA_DB_USER"`
	Password string `envconfig:"GACHPALA_DB_PASSWORD"`
	Name     string `envconfig:"GACHPALA_DB_NAME"`
	SSLMode  string `envconfig:"GACHPALA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GACHPALA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GACHPALA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GACHPALA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GACHPALA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either GACHPALA_DB_DSN or GACHPALA_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"GACHPALA_REDIS_URL"`
	Address      string        `envconfig:"GACHPALA_REDIS_ADDR"`
	Password     string        `envconfig:"GACHPALA_REDIS_PASSWORD"`
	DB           int           `envconfig:"GACHPALA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GACHPALA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GACHPALA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GACHPALA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GACHPALA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GACHPALA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	TTLMinutes   int    `envconfig:"GACHPALA_SESSION_TTL_MINUTES" default:"10080"`
	CookieName   string `envconfig:"GACHPALA_SESSION_COOKIE_NAME" default:"gachpala_session"`
	CookieSecure bool   `envconfig:"GACHPALA_SESSION_COOKIE_SECURE" default:"false"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GACHPALA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GACHPALA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GACHPALA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GACHPALA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GACHPALA_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GACHPALA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GACHPALA_AUTO_MIGRATE" default:"false"`
}
