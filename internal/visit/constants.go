package visit

// Log messages
const (
	LogMsgVisitLogged          = "Visit logged"
	LogMsgVisitInsertFailed    = "Failed to insert visit log"
	LogMsgQuestEvalFailed      = "Quest evaluation failed after visit, ignoring"
	LogMsgEventPublishFailed   = "Failed to publish visit event"
	LogMsgInvalidVisitRejected = "Visit log rejected by validation"
)

// DefaultRecentLimit is how many visits RecentVisits returns when no limit is given
const DefaultRecentLimit = 20
