package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/you/agrialert/domain"
)

func TestJWTServiceGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "agrialert", time.Hour)

	token, err := svc.Generate(42, domain.RoleFarmer, "+15550001111")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != domain.RoleFarmer {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleFarmer)
	}
	if claims.LoginKey != "+15550001111" {
		t.Errorf("LoginKey = %q, want phone", claims.LoginKey)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("exp %d should be after iat %d", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestJWTServiceExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", "agrialert", -time.Minute)

	token, err := svc.Generate(7, domain.RoleAdmin, "admin@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want ErrTokenExpired", err)
	}
	if errors.Is(err, domain.ErrTokenInvalid) {
		t.Error("expired token must not be reported as invalid")
	}
}

func TestJWTServiceWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "agrialert", time.Hour)
	verifier := NewJWTService("secret-b", "agrialert", time.Hour)

	token, err := issuer.Generate(1, domain.RoleAdmin, "admin@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = verifier.Validate(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("Validate() error = %v, want ErrTokenInvalid", err)
	}
}

func TestJWTServiceGarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", "agrialert", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Validate(tok); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Validate(%q) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestJWTServiceTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", "agrialert", time.Hour)

	token, err := svc.Generate(3, domain.RoleFarmer, "+15550002222")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if tampered == token {
		tampered = token[:len(token)-4] + "BBBB"
	}
	if _, err := svc.Validate(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("Validate(tampered) error = %v, want ErrTokenInvalid", err)
	}
}
