package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric exposed by the client
const Namespace = "onsen"

// Backend metric names
const (
	MetricNameBackendRequestsTotal   = "backend_requests_total"
	MetricNameBackendRequestDuration = "backend_request_duration_seconds"
	MetricNameBackendInFlight        = "backend_requests_in_flight"
	MetricNameHTTPRequestsTotal      = "http_client_requests_total"
	MetricNameHTTPRequestDuration    = "http_client_request_duration_seconds"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameVisitsLogged       = "visits_logged_total"
	MetricNameBathingSeconds     = "bathing_seconds_total"
	MetricNameQuestsCompleted    = "quests_completed_total"
	MetricNameAccessoriesGranted = "accessories_granted_total"
	MetricNameAccessoryEquips    = "accessory_equips_total"
	MetricNameCompanionLevelUps  = "companion_level_ups_total"
)

// ============================================================================
// Help Text
// ============================================================================

const (
	HelpTextBackendRequestsTotal   = "Total number of calls to the managed backend"
	HelpTextBackendRequestDuration = "Managed backend call latency in seconds"
	HelpTextBackendInFlight        = "Number of managed backend calls currently in flight"
	HelpTextHTTPRequestsTotal      = "Total number of outbound HTTP requests"
	HelpTextHTTPRequestDuration    = "Outbound HTTP request latency in seconds"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextVisitsLogged       = "Total number of bathing sessions logged"
	HelpTextBathingSeconds     = "Total bathing time logged in seconds"
	HelpTextQuestsCompleted    = "Total number of quests newly completed"
	HelpTextAccessoriesGranted = "Total number of accessory grant attempts by outcome"
	HelpTextAccessoryEquips    = "Total number of equip and unequip operations"
	HelpTextCompanionLevelUps  = "Total number of companion level ups"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelComponent = "component"
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelMethod    = "method"
	LabelHost      = "host"
	LabelType      = "type"
	LabelGranted   = "granted"
	LabelAction    = "action"
)

// Status label values
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusConflict = "conflict"
	StatusTimeout  = "timeout"
	StatusError    = "error"
)

// Components
const (
	ComponentDatabase = "database"
	ComponentAuth     = "auth"
	ComponentPlaces   = "places"
)

// Equip actions
const (
	ActionEquip   = "equip"
	ActionUnequip = "unequip"
)

// Latency buckets in seconds for calls over the network to hosted services
var BackendLatencyBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Log messages
const (
	LogMsgEventPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
