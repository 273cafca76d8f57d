package auth

import (
	"strings"
	"testing"
)

const testSecret = "test-secret-key"

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	generated, err := GenerateToken(testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if generated.ID == "" {
		t.Error("Token ID should not be empty")
	}

	if len(generated.Plaintext) != TokenLen {
		t.Errorf("Plaintext should be %d chars, got %d", TokenLen, len(generated.Plaintext))
	}

	if !ValidateTokenFormat(generated.Plaintext) {
		t.Errorf("Generated token should pass format validation: %s", generated.Plaintext)
	}

	if generated.Hash != TokenDigest(testSecret, generated.Plaintext) {
		t.Error("Hash should equal the digest of the plaintext")
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	t.Parallel()

	t1, err := GenerateToken(testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	t2, err := GenerateToken(testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if t1.Plaintext == t2.Plaintext {
		t.Error("Two generated tokens should differ")
	}
	if t1.ID == t2.ID {
		t.Error("Two generated token IDs should differ")
	}
}

func TestTokenDigest_Deterministic(t *testing.T) {
	t.Parallel()

	plaintext := strings.Repeat("ab", 20)

	d1 := TokenDigest(testSecret, plaintext)
	d2 := TokenDigest(testSecret, plaintext)

	if d1 != d2 {
		t.Error("Same input should produce same digest")
	}

	if len(d1) != 64 {
		t.Errorf("Digest should be 64 hex chars, got %d", len(d1))
	}
}

func TestTokenDigest_KeyedBySecret(t *testing.T) {
	t.Parallel()

	plaintext := strings.Repeat("cd", 20)

	if TokenDigest("secret-one", plaintext) == TokenDigest("secret-two", plaintext) {
		t.Error("Different secrets should produce different digests")
	}
}

func TestValidateTokenFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", strings.Repeat("a1", 20), true},
		{"empty", "", false},
		{"too short", strings.Repeat("a", 39), false},
		{"too long", strings.Repeat("a", 41), false},
		{"uppercase hex", strings.Repeat("A1", 20), false},
		{"non hex", strings.Repeat("g", 40), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidateTokenFormat(tt.token); got != tt.want {
				t.Errorf("ValidateTokenFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
