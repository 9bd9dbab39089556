package auth

import "time"

// Auth API paths, relative to the project URL
const (
	PathToken     = "/auth/v1/token"
	PathUser      = "/auth/v1/user"
	PathLogout    = "/auth/v1/logout"
	PathAuthorize = "/auth/v1/authorize"
)

// Grant types accepted by the token endpoint
const (
	GrantPassword     = "password"
	GrantRefreshToken = "refresh_token"
	GrantPKCE         = "pkce"
)

// Loopback callback routes
const (
	CallbackPath      = "/auth/callback"
	CallbackErrorPath = "/auth/auth-code-error"
)

const (
	// DefaultProvider is the OAuth provider offered on the title screen
	DefaultProvider = "google"

	// HeaderAPIKey carries the anon key on every auth request
	HeaderAPIKey = "apikey"

	// DefaultHTTPTimeout bounds one auth round trip
	DefaultHTTPTimeout = 15 * time.Second

	// RefreshSkew refreshes sessions slightly before they actually expire
	RefreshSkew = 30 * time.Second

	// SessionFileMode keeps the stored tokens private to the user
	SessionFileMode = 0o600
)

// Log messages
const (
	LogMsgSignedIn           = "Signed in"
	LogMsgSignedOut          = "Signed out"
	LogMsgSessionRefresh     = "Session refreshed"
	LogMsgRefreshFailed      = "Session refresh failed, sign-in required"
	LogMsgLogoutFailed       = "Remote logout failed, local session cleared anyway"
	LogMsgSessionClearFailed = "Failed to clear stored session"
	LogMsgCallbackNoCode     = "No auth code provided in callback"
	LogMsgCallbackFailed     = "Auth code exchange failed"
	LogMsgCallbackSuccess    = "Auth code exchanged"
)
