// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := manager.VerifyPassword("secret123", hash); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
	if err := manager.VerifyPassword("wrong-password", hash); err == nil {
		t.Error("VerifyPassword must fail for the wrong password")
	}
}

func TestValidatePasswordBounds(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	if err := manager.ValidatePassword("short"); err == nil {
		t.Error("five characters must be rejected")
	}
	if err := manager.ValidatePassword("sixsix"); err != nil {
		t.Errorf("six characters must be accepted: %v", err)
	}
	if err := manager.ValidatePassword(strings.Repeat("a", 128)); err != nil {
		t.Errorf("128 characters must be accepted: %v", err)
	}
	if err := manager.ValidatePassword(strings.Repeat("a", 129)); err == nil {
		t.Error("129 characters must be rejected")
	}
}

func TestHashPasswordRejectsInvalid(t *testing.T) {
	manager := NewPasswordManager(testConfig())
	if _, err := manager.HashPassword("abc"); err == nil {
		t.Fatal("HashPassword must reject passwords failing validation")
	}
}
