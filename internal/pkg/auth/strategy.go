package auth

import (
	"time"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// Strategy issues and verifies session tokens stored in the session cookie.
type Strategy interface {
	IssueToken(session model.Session) (string, error)
	ParseToken(token string) (model.Session, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
