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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Inventory    InventoryConfig
	Dashboard    DashboardConfig
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
	Env            string   `envconfig:"CABSTOCK_APP_ENV" required:"true"`
	Port           string   `envconfig:"CABSTOCK_APP_PORT" required:"true"`
	LogLevel       string   `envconfig:"CABSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack   bool     `envconfig:"CABSTOCK_LOG_WARN_STACK" default:"false"`
	AllowedOrigins []string `envconfig:"CABSTOCK_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CABSTOCK_DB_DSN"`
	Driver string `envconfig:"CABSTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CABSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"CABSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CABSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"CABSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"CABSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"CABSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CABSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CABSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CABSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CABSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CABSTOCK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CABSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"CABSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"CABSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CABSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CABSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CABSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CABSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CABSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CABSTOCK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CABSTOCK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CABSTOCK_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"CABSTOCK_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the redis session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CABSTOCK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CABSTOCK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CABSTOCK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CABSTOCK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CABSTOCK_ARGON_KEY_LEN" default:"32"`
}

type InventoryConfig struct {
	DefaultImageURL   string        `envconfig:"CABSTOCK_DEFAULT_IMAGE_URL" default:"/images/placeholder.png"`
	ImageMaxBytes     int           `envconfig:"CABSTOCK_IMAGE_MAX_BYTES" default:"2097152"`
	ImageProbeTimeout time.Duration `envconfig:"CABSTOCK_IMAGE_PROBE_TIMEOUT" default:"5s"`
}

type DashboardConfig struct {
	SummaryCacheTTL time.Duration `envconfig:"CABSTOCK_DASHBOARD_CACHE_TTL" default:"30s"`
	ActivityFeedLen int           `envconfig:"CABSTOCK_DASHBOARD_FEED_LEN" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CABSTOCK_AUTO_MIGRATE" default:"false"`
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
