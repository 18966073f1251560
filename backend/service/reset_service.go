package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

const resetTokenPurpose = "password_reset"

type resetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// resetSigningKey derives the per-user signing key from the server secret
// and the user's current password hash. Changing the password rotates the
// key, which invalidates every outstanding reset token without any stored
// state.
func resetSigningKey(user *model.User) []byte {
	sum := sha256.Sum256([]byte(common.JWTSecret + "|" + user.Password))
	return sum[:]
}

// GeneratePasswordResetToken issues a single-purpose token proving control
// of the account's registered email, valid for ResetTokenValidMinutes.
func GeneratePasswordResetToken(user *model.User) (string, error) {
	now := time.Now()
	claims := resetClaims{
		Purpose: resetTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sharebox",
			Subject:   fmt.Sprintf("%d", user.Id),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(common.ResetTokenValidMinutes) * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(resetSigningKey(user))
}

// ValidatePasswordResetToken verifies a reset token against the user it
// claims to be for. Verification recomputes the derived key; a token minted
// before a password change fails here because the key no longer matches.
func ValidatePasswordResetToken(user *model.User, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &resetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return resetSigningKey(user), nil
	})
	if err != nil {
		return ErrResetTokenInvalid
	}
	claims, ok := token.Claims.(*resetClaims)
	if !ok || !token.Valid || claims.Purpose != resetTokenPurpose {
		return ErrResetTokenInvalid
	}
	if claims.Subject != fmt.Sprintf("%d", user.Id) {
		return ErrResetTokenInvalid
	}
	return nil
}
