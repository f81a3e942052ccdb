package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	accountID := "acc-123"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, accountID, duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}

	// Verify claims
	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != accountID {
		t.Errorf("expected subject %s, got %s", accountID, claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		issuer    string
		accountID string
		duration  time.Duration
		key       string
	}{
		{"empty issuer", "", "acc", time.Hour, "key"},
		{"empty account", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "acc", 0, "key"},
		{"empty key", "iss", "acc", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.accountID, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	accountID := "acc-456"
	key := "secret-key"
	duration := time.Minute * 5

	genToken, _ := GenerateJWTToken(issuer, accountID, duration, key)

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.AccountID != accountID {
		t.Errorf("expected accountID %s, got %s", accountID, parsedToken.AccountID)
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	issuer := "test-issuer"
	key := "correct-key"
	wrongKey := "wrong-key"

	genToken, _ := GenerateJWTToken(issuer, "acc-1", time.Hour, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, wrongKey, issuer)
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issuer := "test-issuer"
	key := "key"
	// Token that expired 1 second ago
	genToken, _ := GenerateJWTToken(issuer, "acc-1", -time.Second, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)
	if err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("real-issuer", "acc-1", time.Hour, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("expected token 'abc.def.ghi', got %s", token)
	}

	if _, err := ParseBearerToken("Bearer"); err == nil {
		t.Error("expected error for header without token, got nil")
	}
	if _, err := ParseBearerToken(""); err == nil {
		t.Error("expected error for empty header, got nil")
	}
}

func TestParseAccountIDFromJWT(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", "acc-789", time.Hour, "key")

	accountID, err := ParseAccountIDFromJWT(genToken.SignedString)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if accountID != "acc-789" {
		t.Errorf("expected accountID 'acc-789', got %s", accountID)
	}

	if _, err := ParseAccountIDFromJWT("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
}
