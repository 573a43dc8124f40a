package auth

import (
	"strings"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// Route constants shared by the gate and the HTTP layer.
const (
	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

// Decision is the outcome of an access check.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectLogin
	DecisionRedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectDashboard:
		return "redirect_dashboard"
	default:
		return "unknown"
	}
}

// IsProtected reports whether path belongs to the dashboard area.
func IsProtected(path string) bool {
	return path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/")
}

// Decide resolves access for a request to path made with the given session.
// Anonymous visitors are kept out of the dashboard; signed in users are sent
// from public pages into it.
func Decide(session model.Session, path string) Decision {
	switch {
	case IsProtected(path) && !session.LoggedIn():
		return DecisionRedirectLogin
	case !IsProtected(path) && session.LoggedIn():
		return DecisionRedirectDashboard
	default:
		return DecisionAllow
	}
}

// SafeCallback returns target when it points inside the dashboard, and the
// dashboard root otherwise.
func SafeCallback(target string) string {
	if target == "" || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return DashboardPath
	}
	path := target
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !IsProtected(path) {
		return DashboardPath
	}
	return target
}
