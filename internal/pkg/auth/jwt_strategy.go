package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

const issuer = "invoices-dashboard"

// DefaultTTL is used when no session lifetime is configured.
const DefaultTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid auth token")

// Claims carry the session identity inside the token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTStrategy signs session tokens with HS256.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates signed token for the session.
func (s *JWTStrategy) IssueToken(session model.Session) (string, error) {
	if strings.TrimSpace(session.UserID) == "" {
		return "", errors.New("user id is required")
	}

	now := s.now().UTC()
	claims := Claims{
		Email: session.Email,
		Name:  session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates token and returns the session it encodes.
func (s *JWTStrategy) ParseToken(token string) (model.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Session{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Session{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return model.Session{}, ErrInvalidToken
	}

	return model.Session{UserID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}

// TTL reports how long issued tokens stay valid.
func (s *JWTStrategy) TTL() time.Duration {
	return s.ttl
}
