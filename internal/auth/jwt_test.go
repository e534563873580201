package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tya/internal/catalog"
)

const testSecret = "0123456789abcdef-test"

func TestJWTValidatorRoundTrip(t *testing.T) {
	v := NewJWTValidator(testSecret)
	token, err := v.Sign(catalog.Identity{UserID: 5, Username: "eva"}, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	id, err := v.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id.UserID != 5 || id.Username != "eva" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestJWTValidatorSubjectFallback(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "77"}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	id, err := NewJWTValidator(testSecret).Validate(context.Background(), raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id.UserID != 77 {
		t.Fatalf("expected user 77, got %d", id.UserID)
	}
}

func TestJWTValidatorRejects(t *testing.T) {
	v := NewJWTValidator(testSecret)
	ctx := context.Background()

	expired, _ := v.Sign(catalog.Identity{UserID: 1}, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	foreign, _ := NewJWTValidator("another-secret-value").Sign(catalog.Identity{UserID: 1}, jwt.RegisteredClaims{})
	anonymous, _ := v.Sign(catalog.Identity{}, jwt.RegisteredClaims{})

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not-a-jwt",
		"expired":   expired,
		"foreign":   foreign,
		"anonymous": anonymous,
	} {
		if _, err := v.Validate(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}
