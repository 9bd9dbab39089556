package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Journal file configuration
const (
	// JournalSchemaVersion is the current version of the journal line format
	JournalSchemaVersion = "1.0"

	// JournalFileName is the journal file created inside the state directory
	JournalFileName = "events.jsonl"

	// JournalFilePermissions is the file permission mode for the journal
	JournalFilePermissions = 0600
)

// Metadata keys
const (
	MetadataKeySource = "source"
)

// Sources attached to events
const (
	SourceRandom      = "random"
	SourceManual      = "manual"
	SourceSession     = "session"
	SourceDebug       = "debug"
)

// Log message constants
const (
	LogMsgJournalWriteFailed = "Failed to append event to journal"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
