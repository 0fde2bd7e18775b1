package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub      string `json:"sub"` // user id
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is what a user token carries.
type Identity struct {
	UserID   string
	Email    string
	Username string
}

func generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateToken signs an HS256 token for id valid for ttl and returns it
// with its JTI.
func GenerateToken(secret string, id Identity, ttl time.Duration) (string, string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	c := Claims{
		Sub:      id.UserID,
		Email:    id.Email,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tokenStr, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return tokenStr, jti, nil
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid && claims.Sub != "" {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
