// Package auth issues and validates the signed session tokens that gate
// every protected operation. Tokens are self-contained HS256 JWTs carrying
// the user id and email; there is no server-side session state, so a token
// stays valid until its natural expiry.
package auth

import (
	"errors"
	"time"

	"github.com/dkhromov/fittrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the assertions embedded in a session token: the registered
// claim set plus the authenticated user's id and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// GenerateToken mints an HS256-signed session token for the given user,
// expiring validityDuration from now.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry of a session token and
// returns its claims. Only HS256 is accepted; "none" or any other
// algorithm fails with common.ErrInvalidToken. A token whose signature is
// valid but whose expiry has passed fails with common.ErrTokenExpired.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
