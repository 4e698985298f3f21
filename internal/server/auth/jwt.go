// Package auth issues and verifies the signed, time-bound access tokens
// that assert a user's identity, and carries the verified identity through
// request contexts.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret and ErrNonPositiveTTL are returned when signing with
// unusable settings.
var (
	ErrEmptySecret    = errors.New("empty token secret")
	ErrNonPositiveTTL = errors.New("token lifetime must be positive")
)

// Claims carries the standard registered claims plus the user ID the
// token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// Options configures a TokenManager. Both fields come from server config;
// nothing here reads the environment.
type Options struct {
	Secret []byte
	TTL    time.Duration
}

// TokenManager issues and verifies HS256 tokens. It is stateless and safe
// for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(opts Options) *TokenManager {
	return &TokenManager{secret: opts.Secret, ttl: opts.TTL, now: time.Now}
}

// Issue signs a token for userID that expires after the configured TTL.
func (m *TokenManager) Issue(userID string) (string, error) {
	return GenerateToken(userID, m.secret, m.ttl, m.now())
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded user ID. Expired tokens yield common.ErrTokenExpired, every
// other failure common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	return GetUserIDFromToken(tokenString, m.secret, m.now)
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration, now time.Time) (string, error) {
	if len(secretKey) == 0 {
		return "", ErrEmptySecret
	}
	if validityDuration <= 0 {
		return "", ErrNonPositiveTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUserIDFromToken(tokenString string, secretKey []byte, now func() time.Time) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if len(secretKey) == 0 {
			return nil, ErrEmptySecret
		}
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
