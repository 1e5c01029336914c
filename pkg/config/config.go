package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Store        StoreConfig
	Notify       NotifyConfig
	Cron         CronConfig
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
	Env          string `envconfig:"QUICKMART_APP_ENV" required:"true"`
	Port         string `envconfig:"QUICKMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUICKMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUICKMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"QUICKMART_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"QUICKMART_DB_DSN"`
	Driver string `envconfig:"QUICKMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUICKMART_DB_HOST"`
	LegacyPort     int    `envconfig:"QUICKMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUICKMART_DB_USER"`
	LegacyPassword string `envconfig:"QUICKMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUICKMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUICKMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUICKMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUICKMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUICKMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUICKMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUICKMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUICKMART_REDIS_ADDR"`
	Password     string        `envconfig:"QUICKMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUICKMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUICKMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUICKMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUICKMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUICKMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUICKMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StoreConfig tunes the storefront domain services.
type StoreConfig struct {
	SimLatency     time.Duration `envconfig:"QUICKMART_SIM_LATENCY" default:"0"`
	RecentLimit    int           `envconfig:"QUICKMART_ORDERS_RECENT_LIMIT" default:"5"`
	DeliveryOffset time.Duration `envconfig:"QUICKMART_DELIVERY_OFFSET" default:"168h"`
}

type NotifyConfig struct {
	FromAddress      string `envconfig:"QUICKMART_NOTIFY_FROM" default:"\"QuickMart\" <noreply@quickmart.com>"`
	DefaultRecipient string `envconfig:"QUICKMART_NOTIFY_DEFAULT_RECIPIENT" default:"customer@example.com"`
}

type CronConfig struct {
	Interval       time.Duration `envconfig:"QUICKMART_CRON_INTERVAL" default:"1h"`
	ProgressAfter  time.Duration `envconfig:"QUICKMART_CRON_PROGRESS_AFTER" default:"24h"`
	LockTTL        time.Duration `envconfig:"QUICKMART_CRON_LOCK_TTL" default:"2h"`
	ProgressActive bool          `envconfig:"QUICKMART_CRON_PROGRESS_ACTIVE" default:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUICKMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUICKMART_AUTO_MIGRATE" default:"false"`
	SeedOrders  bool `envconfig:"QUICKMART_SEED_ORDERS" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
