package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testManager() JWTManager {
	return JWTManager{
		Secret:          []byte("unit-test-secret"),
		Issuer:          "jobtrackr-test",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()
	signed, ttl, err := m.IssueAccessToken("user-1", "admin", "a@example.com", "alice")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if ttl != time.Minute {
		t.Fatalf("ttl = %v, want 1m", ttl)
	}

	claims, err := m.ParseAccessToken(signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "admin" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := testManager()
	signed, jti, expiresAt, err := m.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	if jti == "" {
		t.Fatal("empty jti")
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiresAt in the past: %v", expiresAt)
	}

	claims, err := m.ParseRefreshToken(signed)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if claims.ID != jti || claims.Subject != "user-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	m := testManager()
	signed, _, err := m.IssueAccessToken("user-1", "user", "a@example.com", "alice")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := m.ParseRefreshToken(signed); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestParseRefreshRequiresExpiry(t *testing.T) {
	m := testManager()
	claims := RefreshClaims{
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   m.Issuer,
			Subject:  "user-1",
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := m.ParseRefreshToken(signed); err == nil {
		t.Fatal("token without exp accepted")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testManager()
	signed, _, _, err := m.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	other := testManager()
	other.Secret = []byte("different-secret")
	if _, err := other.ParseRefreshToken(signed); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
