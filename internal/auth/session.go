package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrUnauthorized = errors.New("unauthorized")

// SessionSigner issues HS256 session tokens whose subject is the account id.
type SessionSigner struct {
	secret []byte
}

func NewSessionSigner(secret string) (*SessionSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	return &SessionSigner{secret: []byte(secret)}, nil
}

func (s *SessionSigner) Issue(accountID string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, nil
}

type SessionVerifier struct {
	secret []byte
}

func NewSessionVerifier(secret string) (*SessionVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	return &SessionVerifier{secret: []byte(secret)}, nil
}

// Verify checks the signature and expiry of a session token and returns its subject.
func (v *SessionVerifier) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w: %w", ErrUnauthorized, err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid session token: %w", ErrUnauthorized)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("session token has no subject: %w", ErrUnauthorized)
	}

	return claims.Subject, nil
}

type ServiceKeyVerifier struct {
	key []byte
}

func NewServiceKeyVerifier(key string) (*ServiceKeyVerifier, error) {
	if key == "" {
		return nil, fmt.Errorf("service key is required")
	}

	return &ServiceKeyVerifier{key: []byte(key)}, nil
}

func (v *ServiceKeyVerifier) Verify(presented string) error {
	if subtle.ConstantTimeCompare([]byte(presented), v.key) != 1 {
		return ErrUnauthorized
	}

	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
