package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgAuthRequired = "authentication required"

	// Backend errors
	ErrMsgDataAccess = "data access error"

	// Companion errors
	ErrMsgCompanionNotFound = "companion not found"

	// Accessory errors
	ErrMsgEmptyCatalog = "accessory catalog is empty"
	ErrMsgAlreadyOwned = "accessory already owned"
	ErrMsgNotOwned     = "accessory not owned"

	// Quest errors
	ErrMsgQuestNotFound    = "quest not found"
	ErrMsgAlreadyCompleted = "quest already completed"

	// Location errors
	ErrMsgTooFarFromOnsen = "too far from onsen"

	// Bathing session errors
	ErrMsgNoActiveSession      = "no bathing session in progress"
	ErrMsgSessionAlreadyActive = "a bathing session is already in progress"

	// Screen errors
	ErrMsgInvalidTransition = "invalid screen transition"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrAuthRequired = errors.New(ErrMsgAuthRequired)

	// ErrDataAccess wraps any failed round trip to the managed backend.
	ErrDataAccess = errors.New(ErrMsgDataAccess)

	ErrCompanionNotFound = errors.New(ErrMsgCompanionNotFound)

	ErrEmptyCatalog = errors.New(ErrMsgEmptyCatalog)
	ErrAlreadyOwned = errors.New(ErrMsgAlreadyOwned)
	ErrNotOwned     = errors.New(ErrMsgNotOwned)

	ErrQuestNotFound    = errors.New(ErrMsgQuestNotFound)
	ErrAlreadyCompleted = errors.New(ErrMsgAlreadyCompleted)

	ErrTooFarFromOnsen = errors.New(ErrMsgTooFarFromOnsen)

	ErrNoActiveSession      = errors.New(ErrMsgNoActiveSession)
	ErrSessionAlreadyActive = errors.New(ErrMsgSessionAlreadyActive)

	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
