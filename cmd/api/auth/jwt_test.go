package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	manager, err := NewJWTManager("", "issuer-for-test", time.Minute)
	if err == nil {
		t.Fatalf("expected error when the secret is empty")
	}
	if manager != nil {
		t.Fatalf("expected nil manager without a secret")
	}
}

func TestNewJWTManagerFillsDefaults(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manager.issuer != "bloglist" {
		t.Fatalf("expected default issuer bloglist, got %q", manager.issuer)
	}
	if manager.ttl != time.Hour {
		t.Fatalf("expected default ttl 1h, got %s", manager.ttl)
	}
}

func TestJWTManagerSignAndParseRoundTrip(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "test-issuer", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := manager.Sign("64b7f0c2a1b2c3d4e5f60718", "root")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	userID, username, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if userID != "64b7f0c2a1b2c3d4e5f60718" {
		t.Fatalf("expected user id 64b7f0c2a1b2c3d4e5f60718, got %q", userID)
	}
	if username != "root" {
		t.Fatalf("expected username root, got %q", username)
	}
}

func TestJWTManagerParseRejectsInvalidSignature(t *testing.T) {
	manager := &JWTManager{
		secret: []byte("service-secret"),
		issuer: "issuer",
		ttl:    time.Hour,
	}

	forgedClaims := jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forgedToken := jwt.NewWithClaims(jwt.SigningMethodHS256, forgedClaims)
	tokenString, err := forgedToken.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign forged token: %v", err)
	}

	if _, _, err = manager.Parse(tokenString); err == nil {
		t.Fatalf("expected parse error for invalid signature")
	}
}

func TestJWTManagerParseRejectsExpiredToken(t *testing.T) {
	manager := &JWTManager{
		secret: []byte("service-secret"),
		issuer: "issuer",
		ttl:    -time.Minute,
	}

	token, err := manager.Sign("user-001", "root")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}
	if _, _, err = manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for expired token")
	}
}

func TestJWTManagerParseRejectsForeignIssuer(t *testing.T) {
	manager := &JWTManager{secret: []byte("service-secret"), issuer: "issuer", ttl: time.Hour}
	other := &JWTManager{secret: []byte("service-secret"), issuer: "someone-else", ttl: time.Hour}

	token, err := other.Sign("user-001", "root")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}
	if _, _, err = manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for foreign issuer")
	}
}

func TestJWTManagerParseRejectsMissingSubClaim(t *testing.T) {
	manager := &JWTManager{
		secret: []byte("service-secret"),
		issuer: "issuer",
		ttl:    time.Hour,
	}

	claims := jwt.MapClaims{
		"username": "root",
		"iss":      "issuer",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(manager.secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, _, err = manager.Parse(tokenString)
	if err == nil {
		t.Fatalf("expected parse error for missing sub claim")
	}
	if !strings.Contains(err.Error(), "token missing sub claim") {
		t.Fatalf("expected missing sub error, got %v", err)
	}
}
