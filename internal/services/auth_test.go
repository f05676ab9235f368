package services

import (
	"errors"
	"testing"
	"time"

	"github.com/pulse-hq/pulse/internal/config"
	"github.com/pulse-hq/pulse/internal/utils"
)

func init() {
	utils.SetJWTSecret("test-secret-for-auth-service")
}

func TestLoginRequest_Structure(t *testing.T) {
	req := LoginRequest{
		Username: "testuser",
		Password: "password123",
		AuthType: "local",
	}

	if req.Username != "testuser" {
		t.Errorf("Username = %q, expected %q", req.Username, "testuser")
	}
	if req.Password != "password123" {
		t.Errorf("Password = %q, expected %q", req.Password, "password123")
	}
	if req.AuthType != "local" {
		t.Errorf("AuthType = %q, expected %q", req.AuthType, "local")
	}
}

func TestLoginRequest_DefaultAuthType(t *testing.T) {
	req := LoginRequest{
		Username: "user",
		Password: "pass",
	}

	if req.AuthType != "" {
		t.Errorf("AuthType should be empty by default, got %q", req.AuthType)
	}
}

func TestAuthErrors_Distinct(t *testing.T) {
	errs := []error{
		ErrInvalidCredentials,
		ErrUserDisabled,
		ErrMissingToken,
		ErrInvalidToken,
		ErrTokenRevoked,
		ErrSessionNotFound,
	}

	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %v and %v should be distinct", a, b)
			}
		}
	}
}

func TestStatus_EmptyToken(t *testing.T) {
	s := &AuthService{jwtConfig: &config.JWTConfig{}}

	result := s.Status("")
	if result.Authenticated {
		t.Error("empty token should not authenticate")
	}
	if result.UserID != nil {
		t.Error("UserID should be nil for unauthenticated status")
	}
}

func TestStatus_GarbageToken(t *testing.T) {
	s := &AuthService{jwtConfig: &config.JWTConfig{}}

	result := s.Status("not.a.jwt")
	if result.Authenticated {
		t.Error("undecodable token should not authenticate")
	}
}

func TestStatus_RefreshTokenRejected(t *testing.T) {
	// Only access tokens count towards authenticated status.
	s := &AuthService{jwtConfig: &config.JWTConfig{}}

	token, _, err := utils.GenerateRefreshToken(7, "user", "member", time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	result := s.Status(token)
	if result.Authenticated {
		t.Error("refresh token should not authenticate status")
	}
}

func TestParseExpiredClaims_ValidToken(t *testing.T) {
	token, jti, _ := utils.GenerateRefreshToken(1, "user", "member", time.Hour)

	claims, err := parseExpiredClaims(token)
	if err != nil {
		t.Fatalf("parseExpiredClaims() error = %v", err)
	}
	if claims.JTI() != jti {
		t.Errorf("JTI() = %q, expected %q", claims.JTI(), jti)
	}
}

func TestParseExpiredClaims_ExpiredToken(t *testing.T) {
	// Expired tokens still yield claims; that's what lets revocation
	// dominate expiry in the refresh flow.
	token, jti, _ := utils.GenerateRefreshToken(1, "user", "member", -time.Minute)

	if _, err := utils.ParseToken(token); err == nil {
		t.Fatal("expected ParseToken to reject the expired token")
	}

	claims, err := parseExpiredClaims(token)
	if err != nil {
		t.Fatalf("parseExpiredClaims() error = %v", err)
	}
	if claims.JTI() != jti {
		t.Errorf("JTI() = %q, expected %q", claims.JTI(), jti)
	}
}

func TestParseExpiredClaims_BadSignature(t *testing.T) {
	utils.SetJWTSecret("other-secret")
	token, _, _ := utils.GenerateRefreshToken(1, "user", "member", -time.Minute)
	utils.SetJWTSecret("test-secret-for-auth-service")

	if _, err := parseExpiredClaims(token); err == nil {
		t.Error("parseExpiredClaims should reject a token signed with a different secret")
	}
}

func TestChangePasswordRequest_Structure(t *testing.T) {
	req := ChangePasswordRequest{
		OldPassword: "oldpass",
		NewPassword: "newpass123",
	}

	if req.OldPassword != "oldpass" {
		t.Errorf("OldPassword = %q, expected %q", req.OldPassword, "oldpass")
	}
	if req.NewPassword != "newpass123" {
		t.Errorf("NewPassword = %q, expected %q", req.NewPassword, "newpass123")
	}
}
