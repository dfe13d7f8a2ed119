package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "cabstock"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "CABSTOCK_APP_ENV"
	EnvPort       = "CABSTOCK_APP_PORT"
	EnvDBDSN      = "CABSTOCK_DB_DSN"
	EnvDBHost     = "CABSTOCK_DB_HOST"
	EnvDBUser     = "CABSTOCK_DB_USER"
	EnvDBName     = "CABSTOCK_DB_NAME"
	EnvRedisURL   = "CABSTOCK_REDIS_URL"
	EnvJWTSecret  = "CABSTOCK_JWT_SECRET"
	EnvJWTIssuer  = "CABSTOCK_JWT_ISSUER"
	EnvJWTExpMins = "CABSTOCK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
