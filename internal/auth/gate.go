// Package auth implements the dashboard's login gate: one static credential
// and a signed session token.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "echoes"

// ErrInvalidToken is returned by Verify for any token that does not check out.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are carried by a session token. Subject is the username and ID a
// per-login session id.
type Claims struct {
	jwt.RegisteredClaims
}

// Gate checks credentials and issues and verifies session tokens.
type Gate struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewGate creates a Gate. An empty secret gets a random key, so sessions end
// when the process restarts.
func NewGate(username, password, secret string, ttl time.Duration) (*Gate, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Gate{
		username: username,
		password: password,
		secret:   key,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Enabled reports whether a credential is configured. Without one every
// login is refused.
func (g *Gate) Enabled() bool {
	return g.username != "" && g.password != ""
}

// TTL is the lifetime of issued tokens.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}

// CheckCredentials compares user and pass against the configured credential
// in constant time.
func (g *Gate) CheckCredentials(user, pass string) bool {
	if !g.Enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(g.password)) == 1
	return userOK && passOK
}

// Issue signs a new session token for user.
func (g *Gate) Issue(user string) (string, time.Time, error) {
	now := g.now()
	expires := now.Add(g.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

// Verify parses and validates a session token.
func (g *Gate) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(g.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject != g.username {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
