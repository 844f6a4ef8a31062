package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New().String()

	token, err := m.Generate(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != userID {
		t.Fatalf("subject = %q, want %q", claims.Subject, userID)
	}

	expiry, err := m.Expiry(token)
	if err != nil {
		t.Fatalf("expiry: %v", err)
	}
	remaining := time.Until(expiry)
	if remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("expiry %v from now, want about an hour", remaining)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate("user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Fatal("token signed with another secret verified")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, err := m.Generate("user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	if _, err := m.Verify("not.a.token"); err == nil {
		t.Fatal("garbage token verified")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractTokenFromHeader(r)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if token != "abc123" {
		t.Fatalf("token = %q, want %q", token, "abc123")
	}

	r.Header.Set("Authorization", "Basic abc123")
	if _, err := ExtractTokenFromHeader(r); err == nil {
		t.Fatal("non-bearer scheme accepted")
	}

	r.Header.Del("Authorization")
	if _, err := ExtractTokenFromHeader(r); err == nil {
		t.Fatal("missing header accepted")
	}
}
