package config

// EnvPrefix is applied by envconfig on top of the per-field names.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "QUICKMART_APP_ENV"
	EnvPort     = "QUICKMART_APP_PORT"
	EnvDBDSN    = "QUICKMART_DB_DSN"
	EnvDBHost   = "QUICKMART_DB_HOST"
	EnvDBUser   = "QUICKMART_DB_USER"
	EnvDBName   = "QUICKMART_DB_NAME"
	EnvRedisURL = "QUICKMART_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
