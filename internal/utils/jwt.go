package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSecret []byte

// SetJWTSecret sets the secret key for JWT signing
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// JWTSecret returns the configured signing key.
func JWTSecret() []byte {
	return jwtSecret
}

// Token types embedded in claims. The auth middleware only accepts access
// tokens; the refresh endpoint only accepts refresh tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the JWT claims. The jti lives in RegisteredClaims.ID and
// is the key into the revocation ledger.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JTI returns the token's unique identifier.
func (c *Claims) JTI() string {
	return c.ID
}

// GenerateAccessToken mints a short-lived access token with a fresh jti.
func GenerateAccessToken(userID uint, username, role string, ttl time.Duration) (string, string, error) {
	return generateToken(TokenTypeAccess, userID, username, role, ttl)
}

// GenerateRefreshToken mints a refresh token with a fresh jti. The jti is
// what gets recorded in outstanding_tokens and, on revocation, blacklisted.
func GenerateRefreshToken(userID uint, username, role string, ttl time.Duration) (string, string, error) {
	return generateToken(TokenTypeRefresh, userID, username, role, ttl)
}

func generateToken(tokenType string, userID uint, username, role string, ttl time.Duration) (string, string, error) {
	if len(jwtSecret) == 0 {
		return "", "", errors.New("jwt secret not set")
	}

	jti := uuid.NewString()
	now := time.Now()

	claims := Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
