package security

import (
	"errors"
	"time"

	"osday/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

func GenerateToken(userID, handle string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"handle":  handle,
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetHandleFromClaims(claims map[string]interface{}) (string, error) {
	handle, ok := claims["handle"].(string)
	if !ok {
		return "", errors.New("handle claim is missing or not a string")
	}
	return handle, nil
}
