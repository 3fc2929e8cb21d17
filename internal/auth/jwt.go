package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecretKey returns the signing key. Read per call rather than at
// package init so godotenv has loaded the environment by the time tokens
// are issued.
func jwtSecretKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken creates a new JWT for a given user ID.
func GenerateToken(userID int64) (string, error) {
	// "sub" (Subject) is the standard claim for the user ID.
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour * 72).Unix(), // Expires in 3 days
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecretKey())
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the user ID (subject) if the token is valid.
func ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token was signed with the algorithm we use.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecretKey(), nil
	})
	if err != nil {
		return 0, err // expired or malformed
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userIDFloat, ok := claims["sub"].(float64)
		if !ok {
			return 0, errors.New("invalid subject claim")
		}
		return int64(userIDFloat), nil
	}

	return 0, errors.New("invalid token")
}
