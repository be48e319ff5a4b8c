// Package controller implements the per-entity client logic: fetching,
// optimistic mutation with rollback, and the shared recovery path for
// unauthorized responses.
package controller

import (
	"errors"

	"go.uber.org/zap"

	"github.com/mkravets/jobtrack/internal/client/gateway"
	"github.com/mkravets/jobtrack/internal/client/session"
)

var (
	// ErrNotAuthenticated is returned when an operation that needs a
	// credential is invoked while logged out.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned after an unauthorized response has
	// cleared the session.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotOpen is returned when applying to a job that is not Open.
	ErrNotOpen = errors.New("job is not open")

	// ErrNotFound is returned when an id is absent from the local
	// collection.
	ErrNotFound = errors.New("not found")

	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid status")
)

// Deps bundles what every controller needs.
type Deps struct {
	// Gateway issues the network calls.
	Gateway *gateway.Gateway
	// Session holds the credential.
	Session *session.Store
	// Log is the structured logger.
	Log *zap.Logger
	// OnSessionEnd runs after the credential has been cleared, both on
	// logout and on detection of an unauthorized response. The client
	// app uses it to stop the notification poller and return to the
	// login prompt. May be nil.
	OnSessionEnd func()
}

// base carries the shared dependencies and the centralized error
// recovery. Every controller embeds it.
type base struct {
	deps Deps
}

// token returns the current bearer token or ErrNotAuthenticated.
func (b *base) token() (string, error) {
	t := b.deps.Session.Token()
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return t, nil
}

// recover funnels every controller error through one place. An
// unauthorized response anywhere triggers the same global recovery:
// clear the credential, notify the session-end hook, and report
// ErrSessionExpired. All other errors pass through unchanged.
func (b *base) recover(err error) error {
	if err == nil {
		return nil
	}
	if gateway.IsUnauthorized(err) {
		b.deps.Log.Info("unauthorized response, ending session")
		_ = b.deps.Session.Clear()
		if b.deps.OnSessionEnd != nil {
			b.deps.OnSessionEnd()
		}
		return ErrSessionExpired
	}
	return err
}
