package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "THRIFTLINE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	switch cfg.App.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.App.StorageDriver)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"THRIFTLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"THRIFTLINE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"THRIFTLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"THRIFTLINE_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"THRIFTLINE_AUTO_MIGRATE" default:"false"`

	// StorageDriver selects the repository backend: postgres or memory.
	StorageDriver string `envconfig:"THRIFTLINE_STORAGE_DRIVER" default:"postgres"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"THRIFTLINE_DB_DSN"`

	Host     string `envconfig:"THRIFTLINE_DB_HOST"`
	Port     int    `envconfig:"THRIFTLINE_DB_PORT" default:"5432"`
	User     string `envconfig:"THRIFTLINE_DB_USER"`
	Password string `envconfig:"THRIFTLINE_DB_PASSWORD"`
	Name     string `envconfig:"THRIFTLINE_DB_NAME"`
	SSLMode  string `envconfig:"THRIFTLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"THRIFTLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"THRIFTLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"THRIFTLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"THRIFTLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from discrete parts when one is not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either THRIFTLINE_DB_DSN or host/user/name must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"THRIFTLINE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"THRIFTLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"THRIFTLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"THRIFTLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"THRIFTLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"THRIFTLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"THRIFTLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"THRIFTLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"THRIFTLINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"THRIFTLINE_JWT_ISSUER" default:"thriftline"`
	ExpirationMinutes int    `envconfig:"THRIFTLINE_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"THRIFTLINE_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"THRIFTLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"THRIFTLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"THRIFTLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"THRIFTLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"THRIFTLINE_ARGON_KEY_LEN" default:"32"`
}
