package logger

const contextKeyRequestID = "request_id"

// Accepted LOG_LEVEL aliases beyond what slog parses itself
const (
	LogLevelWarning = "warning"
	LogLevelQuiet   = "quiet"
)

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "onsenkatsu"
	DefaultVersion     = "dev"
)

// Environments that change the default log shape
const (
	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

// Attribute keys stamped on every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
