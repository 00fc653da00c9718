package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword verifies a candidate against a bcrypt hash when one
// is configured, otherwise against the plain development password.
func CheckPassword(hash, plain, candidate string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(candidate)) == 1
}

// SignAdminToken mints a short-lived admin session token.
func SignAdminToken(secret string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAdminToken checks signature, expiry and the admin subject.
func VerifyAdminToken(secret, token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "admin" {
		return errors.New("not an admin token")
	}
	return nil
}
