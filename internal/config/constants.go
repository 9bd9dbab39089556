package config

import "time"

// Default values applied when an environment variable is unset or unparsable
const (
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"

	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "onsenkatsu"

	DefaultDBMaxConns        = 4
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultMaxOnsenDistanceMeters = 150.0
	DefaultSearchRadiusMeters     = 5000
	DefaultEquippedFetchTimeout   = 5 * time.Second
	DefaultCompanionCacheTTL      = 30 * time.Second
	DefaultOAuthCallbackPort      = 54321

	// StateDirName is created under the user's home directory when STATE_DIR is unset
	StateDirName = ".onsenkatsu"
)

// Environment variable names
const (
	EnvSchemaVersion          = "ENV_SCHEMA_VERSION"
	EnvDatabaseURL            = "DATABASE_URL"
	EnvDBUser                 = "DB_USER"
	EnvDBPassword             = "DB_PASSWORD"
	EnvDBHost                 = "DB_HOST"
	EnvDBPort                 = "DB_PORT"
	EnvDBName                 = "DB_NAME"
	EnvDBMaxConns             = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime      = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime      = "DB_MAX_CONN_LIFETIME"
	EnvSupabaseURL            = "SUPABASE_URL"
	EnvSupabaseAnonKey        = "SUPABASE_ANON_KEY"
	EnvSupabaseJWTSecret      = "SUPABASE_JWT_SECRET"
	EnvGoogleMapsAPIKey       = "GOOGLE_MAPS_API_KEY"
	EnvMaxOnsenDistanceMeters = "ONSEN_MAX_DISTANCE_METERS"
	EnvSearchRadiusMeters     = "ONSEN_SEARCH_RADIUS_METERS"
	EnvEquippedFetchTimeout   = "EQUIPPED_FETCH_TIMEOUT"
	EnvCompanionCacheTTL      = "COMPANION_CACHE_TTL"
	EnvCompanionClientExp     = "COMPANION_CLIENT_EXP"
	EnvStateDir               = "STATE_DIR"
	EnvOAuthCallbackPort      = "OAUTH_CALLBACK_PORT"
	EnvLogLevel               = "LOG_LEVEL"
	EnvLogFormat              = "LOG_FORMAT"
	EnvEnvironment            = "ENVIRONMENT"
	EnvVersion                = "VERSION"
)
