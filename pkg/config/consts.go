package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "bt"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "BT_APP_ENV"
	EnvPort       = "BT_APP_PORT"
	EnvDBDSN      = "BT_DB_DSN"
	EnvDBHost     = "BT_DB_HOST"
	EnvDBUser     = "BT_DB_USER"
	EnvDBName     = "BT_DB_NAME"
	EnvRedisURL   = "BT_REDIS_URL"
	EnvJWTSecret  = "BT_JWT_SECRET"
	EnvJWTIssuer  = "BT_JWT_ISSUER"
	EnvJWTExpMins = "BT_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
