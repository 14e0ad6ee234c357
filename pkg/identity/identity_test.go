package identity

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestIdentityFromClaims(t *testing.T) {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: " user_2abc "},
		Email:            " jane@example.com ",
		FirstName:        "Jane",
		LastName:         "Doe",
		ProfileImageURL:  "https://img.example.com/jane.png",
	}

	id, err := identityFromClaims(claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ID != "user_2abc" {
		t.Fatalf("expected trimmed subject, got %q", id.ID)
	}
	if id.Email != "jane@example.com" {
		t.Fatalf("expected trimmed email, got %q", id.Email)
	}
	if id.FirstName != "Jane" || id.LastName != "Doe" {
		t.Fatalf("unexpected name: %q %q", id.FirstName, id.LastName)
	}
}

func TestIdentityFromClaimsMissingSubject(t *testing.T) {
	if _, err := identityFromClaims(&sessionClaims{}); err == nil {
		t.Fatal("expected error for missing subject")
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	v := &JWKSVerifier{}
	if _, err := v.Verify(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty token")
	}
}
