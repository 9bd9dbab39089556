package app

import (
	"errors"
	"strings"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// IsAuthFailure reports whether err should send the user to the auth error screen
func IsAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired)
}

// UserMessage maps service errors to the text shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		return MsgAuthRequired
	case errors.Is(err, domain.ErrCompanionNotFound):
		return MsgCompanionNotFound
	case errors.Is(err, domain.ErrEmptyCatalog):
		return MsgEmptyCatalog
	case errors.Is(err, domain.ErrAlreadyOwned):
		return MsgAlreadyOwned
	case errors.Is(err, domain.ErrNotOwned):
		return MsgNotOwned
	case errors.Is(err, domain.ErrQuestNotFound):
		return MsgQuestNotFound
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return MsgAlreadyCompleted
	case errors.Is(err, domain.ErrTooFarFromOnsen):
		return MsgTooFar
	case errors.Is(err, domain.ErrNoActiveSession):
		return MsgNoActiveSession
	case errors.Is(err, domain.ErrSessionAlreadyActive):
		return MsgSessionActive
	case errors.Is(err, domain.ErrInvalidTransition):
		return MsgInvalidTransition
	case errors.Is(err, domain.ErrInvalidInput):
		return MsgInvalidInput + ": " + detail(err, domain.ErrMsgInvalidInput)
	case errors.Is(err, domain.ErrDataAccess):
		return MsgDataAccess
	default:
		return MsgUnknown
	}
}

// detail strips the sentinel prefix so only the caller-supplied part remains
func detail(err error, prefix string) string {
	msg := err.Error()
	if i := strings.Index(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	return strings.TrimLeft(msg, ": ")
}
