package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	pkgAuth "github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	testhelpers "github.com/polkiloo/invoices-dashboard/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		ParseFn: func(token string) (model.Session, error) {
			var id string
			if _, err := fmt.Sscanf(token, "token:%s", &id); err != nil {
				return model.Session{}, pkgAuth.ErrInvalidToken
			}
			return model.Session{UserID: id}, nil
		},
	}
}

func loginForm(email, password string) url.Values {
	return url.Values{schema.FieldEmail: {email}, schema.FieldPassword: {password}}
}

func newAuthWithUser(t *testing.T, hasher testhelpers.HasherStub) (*AuthUseCase, *testhelpers.UserRepositoryStub) {
	t.Helper()
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, hasher, newStrategyStub())
	if _, err := uc.Register(context.Background(), "User", "user@nextmail.com", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return uc, repo
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, err := uc.Register(ctx, " Alice ", "alice@nextmail.com", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Name != "Alice" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	stored, err := repo.GetByEmail(ctx, "alice@nextmail.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDefaultsNameToEmail(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	user, err := uc.Register(context.Background(), "", "bob@nextmail.com", "secret")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.Name != "bob@nextmail.com" {
		t.Fatalf("expected email as name, got %q", user.Name)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, err := uc.Register(ctx, "bob", "bob@nextmail.com", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, err := uc.Register(ctx, "bob", "bob@nextmail.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	cases := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{name: "bad email", email: "not-an-email", password: "secret", field: schema.FieldEmail},
		{name: "short password", email: "a@b.com", password: "12345", field: schema.FieldPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), "user", tc.email, tc.password)
			verr, ok := schema.AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(verr.Fields[tc.field]) == 0 {
				t.Fatalf("expected %s error, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", fmt.Errorf("hash error")
	}}, newStrategyStub())
	if _, err := uc.Register(context.Background(), "user", "user@nextmail.com", "123456"); err == nil {
		t.Fatal("expected hashing error")
	}
}

func TestAuthUseCaseRegisterRepositoryError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = fmt.Errorf("db down")
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())
	if _, err := uc.Register(context.Background(), "user", "user@nextmail.com", "123456"); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	uc, _ := newAuthWithUser(t, testhelpers.HasherStub{})

	user, err := uc.Authenticate(context.Background(), loginForm("user@nextmail.com", "123456"))
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.Email != "user@nextmail.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := uc.Authenticate(context.Background(), loginForm("user@nextmail.com", "wrong-pass")); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateTrimsEmail(t *testing.T) {
	uc, _ := newAuthWithUser(t, testhelpers.HasherStub{})
	if _, err := uc.Authenticate(context.Background(), loginForm("  user@nextmail.com ", "123456")); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
}

func TestAuthUseCaseAuthenticateMalformedSkipsLookup(t *testing.T) {
	cases := map[string]url.Values{
		"empty":          {},
		"bad email":      loginForm("user", "123456"),
		"short password": loginForm("user@nextmail.com", "123"),
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			uc, repo := newAuthWithUser(t, testhelpers.HasherStub{})
			if _, err := uc.Authenticate(context.Background(), form); err != domainErrors.ErrInvalidCredentials {
				t.Fatalf("expected invalid credentials error, got %v", err)
			}
			if repo.Lookups != 0 {
				t.Fatalf("expected no storage lookup, got %d", repo.Lookups)
			}
		})
	}
}

func TestAuthUseCaseAuthenticateUnknownEmail(t *testing.T) {
	dummy := 0
	uc, repo := newAuthWithUser(t, testhelpers.HasherStub{DummyCalls: &dummy})
	if _, err := uc.Authenticate(context.Background(), loginForm("absent@nextmail.com", "123456")); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if repo.Lookups != 1 {
		t.Fatalf("expected one lookup, got %d", repo.Lookups)
	}
	if dummy != 1 {
		t.Fatalf("expected dummy comparison, got %d", dummy)
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	uc, repo := newAuthWithUser(t, testhelpers.HasherStub{})
	repo.Err = fmt.Errorf("storage unavailable")
	_, err := uc.Authenticate(context.Background(), loginForm("user@nextmail.com", "123456"))
	if err == nil || errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if !errors.Is(err, repo.Err) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateCompareError(t *testing.T) {
	failure := errors.New("crypto/bcrypt: hashedSecret too short")
	uc, _ := newAuthWithUser(t, testhelpers.HasherStub{CompareFn: func(string, string) error { return failure }})
	_, err := uc.Authenticate(context.Background(), loginForm("user@nextmail.com", "123456"))
	if !errors.Is(err, failure) {
		t.Fatalf("expected compare error, got %v", err)
	}
}

func TestAuthUseCaseSignIn(t *testing.T) {
	uc, _ := newAuthWithUser(t, testhelpers.HasherStub{})
	user, token, err := uc.SignIn(context.Background(), loginForm("user@nextmail.com", "123456"))
	if err != nil {
		t.Fatalf("sign in returned error: %v", err)
	}
	if token != "token:"+user.ID {
		t.Fatalf("unexpected token %q", token)
	}
	if got := uc.Session(token); got.UserID != user.ID {
		t.Fatalf("expected session for %q, got %+v", user.ID, got)
	}
}

func TestAuthUseCaseSignInRejected(t *testing.T) {
	uc, _ := newAuthWithUser(t, testhelpers.HasherStub{})
	if _, token, err := uc.SignIn(context.Background(), loginForm("user@nextmail.com", "nope-nope")); err != domainErrors.ErrInvalidCredentials || token != "" {
		t.Fatalf("expected rejection, got token %q err %v", token, err)
	}
}

func TestAuthUseCaseSignInIssueTokenError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{IssueFn: func(model.Session) (string, error) {
		return "", fmt.Errorf("cannot issue token")
	}}
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, strategy)
	if _, err := uc.Register(context.Background(), "user", "user@nextmail.com", "123456"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, _, err := uc.SignIn(context.Background(), loginForm("user@nextmail.com", "123456")); err == nil {
		t.Fatal("expected token issuing error")
	}
}

func TestAuthUseCaseSession(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	if s := uc.Session("token:42"); s.UserID != "42" {
		t.Fatalf("expected id 42, got %+v", s)
	}
	for _, token := range []string{"", "bad-token"} {
		if s := uc.Session(token); s.LoggedIn() {
			t.Fatalf("expected anonymous session for %q, got %+v", token, s)
		}
	}
}

func TestUserRepositoryStubDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	if _, err := repo.Create(context.Background(), "user", "user@nextmail.com", "hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(context.Background(), "user", "user@nextmail.com", "hash"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}
