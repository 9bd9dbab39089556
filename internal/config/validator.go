package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be set for the client to reach the managed backend
var RequiredEnvVars = []string{
	EnvSchemaVersion,
	EnvSupabaseURL,
	EnvSupabaseAnonKey,
}

// optionalEnv is a variable whose absence only degrades a feature
type optionalEnv struct {
	name    string
	missing func() bool
	warning string
}

var optionalEnvVars = []optionalEnv{
	{
		name:    EnvSupabaseJWTSecret,
		missing: func() bool { return os.Getenv(EnvSupabaseJWTSecret) == "" },
		warning: "access token signatures will not be verified locally",
	},
	{
		name:    EnvGoogleMapsAPIKey,
		missing: func() bool { return os.Getenv(EnvGoogleMapsAPIKey) == "" },
		warning: "nearby onsen search is disabled",
	},
	{
		name: EnvDBPassword,
		missing: func() bool {
			return os.Getenv(EnvDatabaseURL) == "" && os.Getenv(EnvDBPassword) == DefaultDBPassword
		},
		warning: "appears to be using the default value - set DATABASE_URL for the managed backend",
	},
}

// ValidateEnv checks the schema version and that every required variable is
// set. All problems found are joined into one error.
func ValidateEnv() error {
	var errs []error

	switch schemaVersion := os.Getenv(EnvSchemaVersion); {
	case schemaVersion == "":
		errs = append(errs, fmt.Errorf("%s is not set - please update your .env file to include this field (expected: %s)", EnvSchemaVersion, ExpectedEnvSchemaVersion))
	case schemaVersion != ExpectedEnvSchemaVersion:
		errs = append(errs, fmt.Errorf("%s mismatch: expected %s, got %s - your .env file may be outdated", EnvSchemaVersion, ExpectedEnvSchemaVersion, schemaVersion))
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if envVar != EnvSchemaVersion && os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}

	return errors.Join(errs...)
}

// ValidateEnvWithWarnings runs ValidateEnv and then lists optional variables
// whose absence disables a feature
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, opt := range optionalEnvVars {
		if opt.missing() {
			warnings = append(warnings, fmt.Sprintf("%s: %s", opt.name, opt.warning))
		}
	}
	return warnings, nil
}
