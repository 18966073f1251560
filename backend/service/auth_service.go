package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTClaims is the payload carried by both access and refresh tokens.
// TokenType keeps the two kinds apart even if an operator configures the
// same secret for both.
type JWTClaims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateToken issues a short-lived access token for the user.
func GenerateToken(user *model.User) (string, error) {
	return signToken(user, tokenTypeAccess, common.JWTSecret, time.Duration(common.AccessTokenValidMinutes)*time.Minute)
}

// GenerateRefreshToken issues a long-lived refresh token, signed with the
// separate refresh secret so the two kinds can never be swapped.
func GenerateRefreshToken(user *model.User) (string, error) {
	return signToken(user, tokenTypeRefresh, common.JWTRefreshSecret, time.Duration(common.RefreshTokenValidHours)*time.Hour)
}

func signToken(user *model.User, tokenType string, secret string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:    user.Id,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sharebox",
			Subject:   fmt.Sprintf("%d", user.Id),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString string) (*JWTClaims, error) {
	return parseToken(tokenString, tokenTypeAccess, common.JWTSecret)
}

func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return parseToken(tokenString, tokenTypeRefresh, common.JWTRefreshSecret)
}

func parseToken(tokenString string, tokenType string, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}
