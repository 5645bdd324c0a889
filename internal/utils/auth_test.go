package utils

import (
	"testing"

	"github.com/circuitology-club/portalgo/internal/models"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	// Test Hashing
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}
	if len(hash) == 0 {
		t.Error("Hash should not be empty")
	}

	// Test Comparison (Success)
	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}

	// Test Comparison (Failure)
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	profile := &models.Profile{
		ID:    "uuid-1234",
		Email: "test@example.com",
		Name:  "Test Member",
		Role:  models.RoleAdmin,
	}

	// Test Generation
	accessToken, refreshToken, err := GenerateTokens(profile, secret)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Error("Tokens should not be empty")
	}

	// Test Validation (Success)
	claims, err := ValidateToken(accessToken, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims["id"] != profile.ID {
		t.Errorf("Expected user ID %s, got %v", profile.ID, claims["id"])
	}
	if claims["role"] != profile.Role {
		t.Errorf("Expected role %s, got %v", profile.Role, claims["role"])
	}

	// Test Validation (Failure - Wrong Key)
	_, err = ValidateToken(accessToken, "wrong-key")
	if err == nil {
		t.Error("Validation should fail with wrong key")
	}

	// Refresh token carries a type claim, access token does not
	if _, err := ValidateTypedToken(refreshToken, secret, "refresh"); err != nil {
		t.Errorf("Refresh token should validate as refresh: %v", err)
	}
	if _, err := ValidateTypedToken(accessToken, secret, "refresh"); err == nil {
		t.Error("Access token must not validate as refresh token")
	}
}

func TestResetToken(t *testing.T) {
	secret := "test-secret-key-12345"

	token, err := GenerateResetToken("uuid-5678", secret)
	if err != nil {
		t.Fatalf("Failed to generate reset token: %v", err)
	}

	claims, err := ValidateTypedToken(token, secret, "reset")
	if err != nil {
		t.Fatalf("Failed to validate reset token: %v", err)
	}
	if claims["id"] != "uuid-5678" {
		t.Errorf("Expected id uuid-5678, got %v", claims["id"])
	}

	if _, err := ValidateTypedToken(token, secret, "refresh"); err == nil {
		t.Error("Reset token must not validate as refresh token")
	}
}
