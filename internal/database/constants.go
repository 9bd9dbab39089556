package database

import "time"

// DefaultPingTimeout bounds the connectivity check in NewPool
const DefaultPingTimeout = 10 * time.Second

// Migration commands understood by Migrate
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
	MigrateReset   = "reset"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgUnknownMigrateCommand   = "unknown migrate command"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Migrations applied"
)
