package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"github.com/oklog/ulid/v2"
)

// TokenLen is the plaintext token length: 20 random bytes, hex encoded.
const TokenLen = 40

// ErrInvalidTokenFormat indicates the token does not look like one we issued.
var ErrInvalidTokenFormat = errors.New("invalid token format")

var tokenFormatRegex = regexp.MustCompile(`^[a-f0-9]{40}$`)

// GeneratedToken contains the parts of a newly issued token.
type GeneratedToken struct {
	ID        string // ULID, stable identifier for the row
	Plaintext string // Full token (show once only)
	Hash      string // HMAC-SHA256 digest for storage and lookup
}

// GenerateToken creates a new access token. The digest is keyed with the
// application secret so a leaked database does not yield usable tokens.
func GenerateToken(secretKey string) (*GeneratedToken, error) {
	raw := make([]byte, TokenLen/2)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	plaintext := hex.EncodeToString(raw)

	return &GeneratedToken{
		ID:        ulid.Make().String(),
		Plaintext: plaintext,
		Hash:      TokenDigest(secretKey, plaintext),
	}, nil
}

// TokenDigest computes the storage/lookup digest for a plaintext token.
// Unlike password hashing this must be deterministic: tokens are looked up
// by digest on every request.
func TokenDigest(secretKey, plaintext string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidateTokenFormat checks if the token matches the expected format.
func ValidateTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
