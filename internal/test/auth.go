package test

import (
	"context"
	"net/url"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	pkgAuth "github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error

	DummyCalls *int
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// CompareDummy counts calls when DummyCalls is set.
func (h HasherStub) CompareDummy(string) {
	if h.DummyCalls != nil {
		*h.DummyCalls++
	}
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(model.Session) (string, error)
	ParseFn func(string) (model.Session, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(session model.Session) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(session)
	}
	return "token:" + session.UserID, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Session{UserID: "1"}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SessionResolverStub implements the middleware session lookup contract.
type SessionResolverStub struct {
	Sessions map[string]model.Session
	Tokens   []string
}

// Session returns the session registered for token or an anonymous one.
func (s *SessionResolverStub) Session(token string) model.Session {
	s.Tokens = append(s.Tokens, token)
	return s.Sessions[token]
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	SignInFn  func(context.Context, url.Values) (string, error)
	SessionFn func(string) model.Session
}

// SignIn returns token for successful sign in scenarios.
func (s AuthFacadeStub) SignIn(ctx context.Context, form url.Values) (string, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, form)
	}
	return "token", nil
}

// Session resolves token to configured session. The token "token" is logged in by default.
func (s AuthFacadeStub) Session(token string) model.Session {
	if s.SessionFn != nil {
		return s.SessionFn(token)
	}
	if token == "token" {
		return model.Session{UserID: "1", Email: "user@nextmail.com", Name: "User"}
	}
	return model.Session{}
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
