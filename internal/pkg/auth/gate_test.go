package auth

import (
	"testing"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

func TestDecide(t *testing.T) {
	anon := model.Session{}
	user := model.Session{UserID: "u1", Email: "user@nextmail.com"}

	cases := []struct {
		name    string
		session model.Session
		path    string
		want    Decision
	}{
		{"anonymous dashboard root", anon, "/dashboard", DecisionRedirectLogin},
		{"anonymous nested dashboard", anon, "/dashboard/invoices", DecisionRedirectLogin},
		{"anonymous login", anon, "/login", DecisionAllow},
		{"anonymous landing", anon, "/", DecisionAllow},
		{"anonymous lookalike path", anon, "/dashboards", DecisionAllow},
		{"user dashboard", user, "/dashboard/invoices/create", DecisionAllow},
		{"user dashboard root", user, "/dashboard", DecisionAllow},
		{"user login", user, "/login", DecisionRedirectDashboard},
		{"user landing", user, "/", DecisionRedirectDashboard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.session, tc.path); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDecisionString(t *testing.T) {
	if Decision(42).String() != "unknown" {
		t.Fatal("expected unknown decision name")
	}
	if DecisionAllow.String() != "allow" {
		t.Fatal("unexpected allow name")
	}
}

func TestSafeCallback(t *testing.T) {
	cases := map[string]string{
		"":                               "/dashboard",
		"/dashboard/invoices?page=2":     "/dashboard/invoices?page=2",
		"/dashboard":                     "/dashboard",
		"https://evil.example/dashboard": "/dashboard",
		"//evil.example/dashboard":       "/dashboard",
		"/login":                         "/dashboard",
		"/dashboards":                    "/dashboard",
		`/dashboard\..\x`:                "/dashboard",
		"/dashboard/invoices#top":        "/dashboard/invoices#top",
	}
	for in, want := range cases {
		if got := SafeCallback(in); got != want {
			t.Fatalf("SafeCallback(%q) = %q, want %q", in, got, want)
		}
	}
}
