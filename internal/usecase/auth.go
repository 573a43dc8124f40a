package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/domain/repository"
	pkgAuth "github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
)

// AuthUseCase verifies credentials and manages session tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Authenticate checks the submitted login form. Malformed input is rejected
// before any lookup. Unknown emails and wrong passwords are both reported as
// ErrInvalidCredentials.
func (u *AuthUseCase) Authenticate(ctx context.Context, form url.Values) (*model.User, error) {
	creds, err := schema.ValidateCredentials(form)
	if err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.hasher.CompareDummy(creds.Password)
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := u.hasher.Compare(usr.PasswordHash, creds.Password); err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordMismatch) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return usr, nil
}

// SignIn authenticates the form and issues a session token for the user.
func (u *AuthUseCase) SignIn(ctx context.Context, form url.Values) (*model.User, string, error) {
	usr, err := u.Authenticate(ctx, form)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(model.NewSession(usr))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return usr, token, nil
}

// Session resolves a session token. Missing or invalid tokens yield an
// anonymous session.
func (u *AuthUseCase) Session(token string) model.Session {
	if token == "" {
		return model.Session{}
	}
	session, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Session{}
	}
	return session
}

// Register creates an operator account.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	creds, err := schema.ValidateCredentials(url.Values{
		schema.FieldEmail:    {email},
		schema.FieldPassword: {password},
	})
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = creds.Email
	}

	hash, err := u.hasher.Hash(creds.Password)
	if err != nil {
		return nil, err
	}

	return u.users.Create(ctx, name, creds.Email, hash)
}
