package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"collabcast/errors"
)

const issuer = "collabcast"

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates the handshake tokens presented by
// connecting clients. The signing key comes from configuration, never
// from source.
type TokenManager struct {
	key      []byte
	duration time.Duration
}

func NewTokenManager(key []byte, duration time.Duration) *TokenManager {
	return &TokenManager{key: key, duration: duration}
}

// Generate creates a signed JWT for a specific user.
func (t *TokenManager) Generate(userID int64, userName string) (string, error) {
	claims := &CustomClaims{
		UserID:   userID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	// HS256 (HMAC with SHA256), matching what the CRUD side issues.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Validate parses and validates the signature and expiration of a JWT string.
func (t *TokenManager) Validate(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.key, nil
	})
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.ErrInvalidToken
}
