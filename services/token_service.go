package services

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mapify-server/utils/errors"
)

// TokenService issues the bearer tokens viewers need to send map events.
type TokenService struct {
	jwtSecret string
	ttl       time.Duration
}

func NewTokenService(jwtSecret string, ttl time.Duration) *TokenService {
	return &TokenService{jwtSecret: jwtSecret, ttl: ttl}
}

// Issue returns a signed token for a new viewer ID.
func (s *TokenService) Issue(now time.Time) (token string, viewerID string, err error) {
	viewerID = uuid.New().String()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"viewerID": viewerID,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	})
	token, err = t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", "", errors.Wrap(err, "JWT_ERROR", "Failed to generate token", http.StatusInternalServerError)
	}
	return token, viewerID, nil
}
