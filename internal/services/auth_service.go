package services

import (
	aichat_errors "aichat-server/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies session tokens minted by the external identity
// provider. The server never issues tokens itself; it only checks the
// signature and extracts the subject, which is the owner id every
// store query filters on.
type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

type AccessClaims struct {
	jwt.RegisteredClaims
}

func (s *AuthService) ParseAccessToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", aichat_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, aichat_errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil {
		return "", aichat_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", aichat_errors.ErrUnauthorized
	}

	return claims.Subject, nil
}
