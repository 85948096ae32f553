package consts

import "github.com/pkg/errors"

// mongo collections
const (
	RequestCollection      = "requests"
	NotificationCollection = "notifications"
)

// interaction categories
const (
	Connection = "connection"
	Team       = "team"
	Challenge  = "challenge"
	Event      = "event"
)

// request lifecycle statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// notification action types
const (
	RequestReceived = "REQUEST_RECEIVED"
	RequestAccepted = "REQUEST_ACCEPTED"
	RequestRejected = "REQUEST_REJECTED"
)

// Categories - all valid interaction categories
var Categories = []string{Connection, Team, Challenge, Event}

// IsValidCategory reports whether name is a known interaction category.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether status is a valid respond decision.
func IsTerminalStatus(status string) bool {
	return status == StatusAccepted || status == StatusRejected
}

// request lifecycle errors
var (
	InvalidRequestError  = errors.New("invalid request")
	ConflictError        = errors.New("a pending request between these users already exists")
	NotFoundError        = errors.New("request not found")
	AlreadyResolvedError = errors.New("request has already been resolved")
	StoreError           = errors.New("request store unavailable")
)
