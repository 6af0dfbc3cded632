package util

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "a@example.com", Role: model.Staff}
	user.ID = 42
	secret := "test-secret-test-secret-test-secret"

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Staff || claims.Email != "a@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{Email: "a@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, "secret-one-secret-one-secret-one", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret-two-secret-two-secret-two"); err == nil {
		t.Error("token verified with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Email: "a@example.com", Role: model.Student}
	user.ID = 1
	secret := "test-secret-test-secret-test-secret"

	token, err := GenerateJWT(user, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, secret); err == nil {
		t.Error("expired token accepted")
	}
}
