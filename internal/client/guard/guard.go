// Package guard decides, per navigation, whether the current session is
// sufficient to enter a view. It is a synchronous client-side check:
// the server still authorizes every request independently.
package guard

import (
	"github.com/mkravets/jobtrack/internal/client/session"
)

// RouteKind classifies a route for access decisions.
type RouteKind int

const (
	// RoutePublic is open to everyone.
	RoutePublic RouteKind = iota
	// RouteUser requires a logged-in user.
	RouteUser
	// RouteAdmin requires a logged-in admin.
	RouteAdmin
)

// Paths the guard redirects to.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Decision is the result of an access check.
type Decision struct {
	// Allow reports whether the view may mount.
	Allow bool
	// RedirectTo is the path to navigate to when Allow is false.
	RedirectTo string
}

// CanEnter evaluates the access policy for kind against the session.
// A stored token that is structurally invalid counts as guest; the
// store clears it as a side effect of the role read.
func CanEnter(kind RouteKind, store *session.Store) Decision {
	role := store.Role()

	switch kind {
	case RouteUser:
		if role == session.RoleGuest {
			return Decision{RedirectTo: LoginPath}
		}
	case RouteAdmin:
		switch role {
		case session.RoleGuest:
			return Decision{RedirectTo: LoginPath}
		case session.RoleUser:
			return Decision{RedirectTo: DashboardPath}
		}
	}
	return Decision{Allow: true}
}
