package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/onsenkatsu/internal/validation"
)

// Config holds the client configuration
type Config struct {
	LogLevel    string `validate:"oneof=debug info warn warning error quiet"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string
	Version     string

	// DatabaseURL takes precedence over the DB_* parts when set
	DatabaseURL       string `validate:"omitempty,url"`
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int           `validate:"min=1,max=100"`
	DBMaxConnIdleTime time.Duration `validate:"gt=0"`
	DBMaxConnLifetime time.Duration `validate:"gt=0"`

	SupabaseURL       string `validate:"omitempty,url"`
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	GoogleMapsAPIKey string

	MaxOnsenDistanceMeters float64       `validate:"gt=0"`
	SearchRadiusMeters     int           `validate:"min=1,max=50000"`
	EquippedFetchTimeout   time.Duration `validate:"gt=0"`
	CompanionCacheTTL      time.Duration `validate:"gte=0"`
	CompanionClientExp     bool

	StateDir          string `validate:"required"`
	OAuthCallbackPort int    `validate:"min=1,max=65535"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		Version:     getEnv(EnvVersion, DefaultVersion),

		DatabaseURL:       getEnv(EnvDatabaseURL, ""),
		DBUser:            getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:        getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:            getEnv(EnvDBHost, DefaultDBHost),
		DBPort:            getEnv(EnvDBPort, DefaultDBPort),
		DBName:            getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),

		SupabaseURL:       getEnv(EnvSupabaseURL, ""),
		SupabaseAnonKey:   getEnv(EnvSupabaseAnonKey, ""),
		SupabaseJWTSecret: getEnv(EnvSupabaseJWTSecret, ""),

		GoogleMapsAPIKey: getEnv(EnvGoogleMapsAPIKey, ""),

		MaxOnsenDistanceMeters: getEnvAsFloat(EnvMaxOnsenDistanceMeters, DefaultMaxOnsenDistanceMeters),
		SearchRadiusMeters:     getEnvAsInt(EnvSearchRadiusMeters, DefaultSearchRadiusMeters),
		EquippedFetchTimeout:   getEnvAsDuration(EnvEquippedFetchTimeout, DefaultEquippedFetchTimeout),
		CompanionCacheTTL:      getEnvAsDuration(EnvCompanionCacheTTL, DefaultCompanionCacheTTL),
		CompanionClientExp:     getEnvAsBool(EnvCompanionClientExp, false),

		StateDir:          getEnv(EnvStateDir, defaultStateDir()),
		OAuthCallbackPort: getEnvAsInt(EnvOAuthCallbackPort, DefaultOAuthCallbackPort),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	if err := validation.Get().ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", validation.Summary(err))
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// SessionPath is where the signed-in auth session is persisted
func (c *Config) SessionPath() string {
	return filepath.Join(c.StateDir, "session.json")
}

// StatePath is where screen and bathing state is persisted
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, "state.json")
}

// LogDir holds one log file per invocation
func (c *Config) LogDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// JournalPath is the append-only event journal
func (c *Config) JournalPath() string {
	return filepath.Join(c.StateDir, "events.jsonl")
}

// OAuthRedirectURL is the loopback callback the OAuth provider redirects to
func (c *Config) OAuthRedirectURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/auth/callback", c.OAuthCallbackPort)
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return StateDirName
	}
	return filepath.Join(home, StateDirName)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration parses a Go duration string ("5s", "10m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
