package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")

// Claims carry the user identifier under "id", which is the payload shape
// the existing browser client decodes.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration // zero means tokens never expire
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token embedding the user id. An exp claim is only set when
// the manager was configured with a TTL.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Subject:  userID,
		},
	}

	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the signature and shape of a token and returns its claims.
// Expiry is deliberately not checked here; see CheckExpiry.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// CheckExpiry is a separate step so the no-expiry default stays intact while
// a TTL-configured deployment can enforce it.
func (m *Manager) CheckExpiry(claims *Claims, now time.Time) error {
	if claims.ExpiresAt == nil {
		return nil
	}

	if now.After(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}

	return nil
}

// VerifyForRequest is the per-request verification pipeline: signature and
// shape always, expiry only when this manager issues expiring tokens.
func (m *Manager) VerifyForRequest(tokenStr string) (*Claims, error) {
	claims, err := m.Verify(tokenStr)

	if err != nil {
		return nil, err
	}

	if m.ttl > 0 {
		if err := m.CheckExpiry(claims, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	return claims, nil
}
