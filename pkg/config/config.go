package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Inventory     InventoryConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"BT_APP_ENV" required:"true"`
	Port         string `envconfig:"BT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BT_DB_DSN"`
	Driver string `envconfig:"BT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BT_DB_HOST"`
	LegacyPort     int    `envconfig:"BT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BT_DB_USER"`
	LegacyPassword string `envconfig:"BT_DB_PASSWORD"`
	LegacyName     string `envconfig:"BT_DB_NAME"`
	LegacySSLMode  string `envconfig:"BT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BT_REDIS_ADDR"`
	Password     string        `envconfig:"BT_REDIS_PASSWORD"`
	DB           int           `envconfig:"BT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BT_JWT_EXPIRATION_MINUTES" default:"480"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BT_ARGON_KEY_LEN" default:"32"`
}

type InventoryConfig struct {
	// DefaultThreshold seeds new items that do not specify their own
	// low stock threshold.
	DefaultThreshold int `envconfig:"BT_INVENTORY_DEFAULT_THRESHOLD" default:"10"`
	// IdempotencyTTL bounds how long a mutation's idempotency key is
	// remembered before a retry is treated as a fresh request.
	IdempotencyTTL time.Duration `envconfig:"BT_INVENTORY_IDEMPOTENCY_TTL" default:"24h"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BT_LOGIN_RATE_WINDOW" default:"1m"`
	LoginIPLimit       int           `envconfig:"BT_LOGIN_RATE_IP_LIMIT" default:"20"`
	LoginUsernameLimit int           `envconfig:"BT_LOGIN_RATE_USERNAME_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BT_AUTO_MIGRATE" default:"false"`
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
