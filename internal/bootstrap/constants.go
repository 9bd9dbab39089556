package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is used for the state and log directories
	DirPermission = 0o700

	// LogFilePermission keeps log files private to the user
	LogFilePermission = 0o600
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogDirName is created inside the state directory
	LogDirName = "logs"

	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting onsen"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgJournalAttached            = "Event journal attached"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedOpenJournal          = "failed to open event journal"
)

// =============================================================================
// Catalog Sync
// =============================================================================

const (
	LogMsgSyncingCatalog = "Syncing catalog..."
	LogMsgCatalogSynced  = "Catalog synced successfully"

	ErrMsgFailedLoadCatalog = "failed to load catalog"
	ErrMsgFailedSyncCatalog = "failed to sync catalog to database"
)

// =============================================================================
// Services
// =============================================================================

const (
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedCreatePlaces  = "failed to create places client"
	ErrMsgMissingAuthSettings = "SUPABASE_URL and SUPABASE_ANON_KEY must be set"
	ErrMsgMissingPlacesKey    = "GOOGLE_MAPS_API_KEY is not set"
	LogMsgPlacesDisabled      = "Places search disabled, no API key"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown       = "Shutting down..."
	LogMsgJournalCloseFailed = "Event journal close failed"
	LogMsgLogFileCloseFailed = "Log file close failed"
	LogMsgDatabasePoolClosed = "Database pool closed"
)
