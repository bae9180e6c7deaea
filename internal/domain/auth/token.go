package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"brandkit-server-go/internal/platform/errors"
)

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthToken signs and verifies user scoped JWT tokens.
type AuthToken struct {
	secretKey []byte
	ttl       time.Duration
}

// NewAuthToken builds a token helper using the provided secret.
func NewAuthToken(secretKey string) *AuthToken {
	return &AuthToken{
		secretKey: []byte(secretKey),
		ttl:       24 * time.Hour,
	}
}

// WithTTL allows customising the expiration duration.
func (at *AuthToken) WithTTL(ttl time.Duration) *AuthToken {
	if ttl > 0 {
		at.ttl = ttl
	}
	return at
}

// GenerateToken issues a JWT for the provided user.
func (at *AuthToken) GenerateToken(userID uint, username string) (string, error) {
	if len(at.secretKey) == 0 {
		return "", errors.New(errors.KindAuth, "token.generate", "token secret is empty")
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(at.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(at.secretKey)
	if err != nil {
		return "", errors.Wrap(errors.KindAuth, "token.generate", "failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken validates the JWT and extracts the user claims.
func (at *AuthToken) VerifyToken(tokenString string) (*Claims, error) {
	if len(at.secretKey) == 0 {
		return nil, errors.New(errors.KindAuth, "token.verify", "token secret is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return at.secretKey, nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindAuth, "token.verify", "failed to parse token", err)
	}
	if !token.Valid {
		return nil, errors.New(errors.KindAuth, "token.verify", "invalid token")
	}
	if claims.UserID == 0 {
		return nil, errors.New(errors.KindAuth, "token.verify", "missing user claim")
	}
	return claims, nil
}
