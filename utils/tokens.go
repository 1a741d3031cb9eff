package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// IssueAccessToken signs the short-lived bearer token carrying the caller's
// identity and email.
func IssueAccessToken(userID uuid.UUID, email, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IssueRefreshToken signs the long-lived token exchanged via the refresh
// cookie. It intentionally carries nothing beyond the user id.
func IssueRefreshToken(userID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRefreshToken verifies a refresh token and returns the user id it was
// issued for.
func ParseRefreshToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwt.ErrTokenSignatureInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return userID, nil
}

// UserIDFromClaims parses the user id out of verified access-token claims.
func UserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return uuid.Parse(idStr)
}
