package auth

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates creator API tokens
type TokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewTokenService creates a token service using the JWT_SECRET environment
// variable
func NewTokenService() (*TokenService, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}
	return NewTokenServiceWithSecret(secret), nil
}

// NewTokenServiceWithSecret creates a token service with an explicit secret
func NewTokenServiceWithSecret(secret string) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   "creator-pulse",
		lifetime: 24 * time.Hour,
	}
}

// IssueToken creates a signed token for a creator
func (ts *TokenService) IssueToken(creatorID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": creatorID.String(),
		"iss": ts.issuer,
		"iat": now.Unix(),
		"exp": now.Add(ts.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractCreatorID verifies a token and returns the creator ID it carries
func (ts *TokenService) ExtractCreatorID(tokenString string) (uuid.UUID, error) {
	// Remove "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no sub claim in token")
	}

	creatorID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("sub is not a valid creator ID: %w", err)
	}
	return creatorID, nil
}

// ValidateToken is a middleware-friendly function that validates a token
func (ts *TokenService) ValidateToken(authHeader string) (uuid.UUID, bool) {
	if authHeader == "" {
		return uuid.Nil, false
	}

	creatorID, err := ts.ExtractCreatorID(authHeader)
	if err != nil {
		log.Printf("JWT validation error: %v", err)
		return uuid.Nil, false
	}
	return creatorID, true
}
