package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenServiceIssue(t *testing.T) {
	secret := "test-secret"
	s := NewTokenService(secret, time.Hour)

	token, viewerID, err := s.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if viewerID == "" {
		t.Fatal("empty viewer id")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(secret), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["viewerID"] != viewerID {
		t.Errorf("viewerID claim = %v, want %s", claims["viewerID"], viewerID)
	}
}

func TestTokenServiceExpiredToken(t *testing.T) {
	secret := "test-secret"
	s := NewTokenService(secret, time.Minute)

	token, _, err := s.Issue(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(secret), nil }); err == nil {
		t.Fatal("expired token verified")
	}
}
