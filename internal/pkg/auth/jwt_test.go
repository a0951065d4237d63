// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/your-org/clinic-warehouse-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Clinic Warehouse API"
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.Security.BcryptCost = 4
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken("user-1", "admin", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Login != "admin" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "user:user-1" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testConfig()).GenerateAccessToken("user-1", "admin", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "a-different-secret-entirely-here"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken("user-1", "admin", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := manager.ValidateToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) must fail", token)
		}
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Errorf("got %q", got)
	}
	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "bearer abc"} {
		if got := ExtractTokenFromHeader(header); got != "" {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want empty", header, got)
		}
	}
}
