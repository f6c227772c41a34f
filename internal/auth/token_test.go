package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestVerifyRoundTrip(t *testing.T) {
	token, _, err := NewSessionToken(testSecret, "guest@example.com", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	v := NewVerifier(testSecret)
	claims, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Email != "guest@example.com" {
		t.Fatalf("claims.Email = %q, want guest@example.com", claims.Email)
	}
}

func TestVerifyExpiryWindow(t *testing.T) {
	issued := time.Now().UTC()
	token, _, err := NewSessionToken(testSecret, "guest@example.com", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	v := NewVerifier(testSecret)

	v.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := v.Verify(token); err != nil {
		t.Fatalf("Verify at +59m: %v", err)
	}

	v.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := v.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify at +61m: got %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	v := NewVerifier(testSecret)
	if _, err := v.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("Verify(\"\"): got %v, want ErrTokenMissing", err)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	otherSecret, _, err := NewSessionToken("some-other-secret", "guest@example.com", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	v := NewVerifier(testSecret)
	for name, raw := range map[string]string{
		"garbage":      "not.a.jwt",
		"wrong secret": otherSecret,
	} {
		if _, err := v.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("%s: got %v, want ErrTokenInvalid", name, err)
		}
	}
}
