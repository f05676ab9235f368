package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateAccessToken(t *testing.T) {
	token, jti, err := GenerateAccessToken(1, "testuser", "admin", 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateAccessToken() returned empty token")
	}
	if jti == "" {
		t.Error("GenerateAccessToken() returned empty jti")
	}
	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	_, jti1, _ := GenerateRefreshToken(1, "user", "admin", time.Hour)
	_, jti2, _ := GenerateRefreshToken(1, "user", "admin", time.Hour)

	if jti1 == jti2 {
		t.Error("consecutive tokens for the same user should carry different jtis")
	}
}

func TestParseToken(t *testing.T) {
	userID := uint(42)
	username := "testuser"
	role := "admin"

	token, jti, _ := GenerateAccessToken(userID, username, role, 15*time.Minute)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %d, expected %d", claims.UserID, userID)
	}
	if claims.Username != username {
		t.Errorf("Username = %q, expected %q", claims.Username, username)
	}
	if claims.Role != role {
		t.Errorf("Role = %q, expected %q", claims.Role, role)
	}
	if claims.JTI() != jti {
		t.Errorf("JTI() = %q, expected %q", claims.JTI(), jti)
	}
}

func TestParseToken_TokenType(t *testing.T) {
	access, _, _ := GenerateAccessToken(1, "user", "member", 15*time.Minute)
	refresh, _, _ := GenerateRefreshToken(1, "user", "member", time.Hour)

	accessClaims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken(access) error = %v", err)
	}
	if accessClaims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, expected %q", accessClaims.TokenType, TokenTypeAccess)
	}

	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken(refresh) error = %v", err)
	}
	if refreshClaims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, expected %q", refreshClaims.TokenType, TokenTypeRefresh)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseToken(token)
		if err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _, _ := GenerateAccessToken(1, "user", "admin", 15*time.Minute)

	SetJWTSecret("different-secret")
	_, err := ParseToken(token)

	SetJWTSecret("test-secret-key-for-testing")

	if err == nil {
		t.Error("ParseToken should fail with wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, _, _ := GenerateAccessToken(1, "user", "admin", -time.Minute)

	_, err := ParseToken(token)
	if err == nil {
		t.Error("ParseToken should fail for an expired token")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _, _ := GenerateAccessToken(1, "user", "admin", 15*time.Minute)
	claims, _ := ParseToken(token)

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(15 * time.Minute)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}

func TestGenerateToken_NoSecret(t *testing.T) {
	SetJWTSecret("")
	_, _, err := GenerateAccessToken(1, "user", "admin", time.Minute)

	SetJWTSecret("test-secret-key-for-testing")

	if err == nil {
		t.Error("GenerateAccessToken should fail without a secret")
	}
}
