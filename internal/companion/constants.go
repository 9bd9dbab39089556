package companion

import "time"

// Cache sizing. A CLI session rarely sees more than one user.
const (
	DefaultCacheSize = 8
	DefaultCacheTTL  = 30 * time.Second
)

// MaxNameLength bounds companion names
const MaxNameLength = 50

// Log messages
const (
	LogMsgCompanionUpdated   = "Companion updated"
	LogMsgCompanionCreated   = "Companion created"
	LogMsgEventPublishFailed = "Failed to publish companion event"
)
