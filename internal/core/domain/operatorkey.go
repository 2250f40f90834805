package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/argon2"

	"github.com/yndnr/voteledger-go/pkg/token"
)

// Operator key constants.
const (
	// OperatorKeyIDPrefix is the prefix for operator key IDs (public, uses hyphen).
	OperatorKeyIDPrefix = "vlop-"

	// OperatorKeySecretPrefix is the prefix for operator key secrets
	// (sensitive, uses underscore).
	OperatorKeySecretPrefix = "vlos_"

	// OperatorKeySecretBytes is the number of random bytes in a secret.
	OperatorKeySecretBytes = 32
)

// Argon2id parameters for operator key secret hashing.
const (
	Argon2Memory      uint32 = 16384 // KB (16 MB)
	Argon2Time        uint32 = 2
	Argon2Parallelism uint8  = 2
	Argon2KeyLen      uint32 = 32
	Argon2SaltLen            = 16
)

// OperatorKey grants mint and admin authority over the ledger.
//
// The plaintext secret is only ever returned once, at generation time.
// Only the Argon2id hash is stored.
type OperatorKey struct {
	// KeyID is the unique identifier (public).
	// Format: vlop-{ulid_lowercase}, 31 characters total.
	KeyID string `json:"key_id"`

	// Name is a human-readable label for the key.
	Name string `json:"name"`

	// SecretHash is the Argon2id hash of the secret (never exposed).
	SecretHash string `json:"-"`

	// CreatedAt is the creation timestamp (Unix MS).
	CreatedAt int64 `json:"created_at"`
}

// GenerateOperatorKey creates a new operator key.
// Returns the key (with hashed secret) and the plaintext secret.
func GenerateOperatorKey(name string) (*OperatorKey, string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return nil, "", ErrInternal.WithCause(err)
	}

	body, err := token.GenerateWithLength(OperatorKeySecretBytes)
	if err != nil {
		return nil, "", ErrInternal.WithCause(err)
	}
	secret := OperatorKeySecretPrefix + body

	hash, err := HashOperatorSecret(secret)
	if err != nil {
		return nil, "", err
	}

	key := &OperatorKey{
		KeyID:      OperatorKeyIDPrefix + strings.ToLower(id.String()),
		Name:       name,
		SecretHash: hash,
		CreatedAt:  time.Now().UnixMilli(),
	}
	return key, secret, nil
}

// HashOperatorSecret computes the Argon2id hash of a secret.
// Output format: {base64_salt}${base64_hash}.
func HashOperatorSecret(secret string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", ErrInternal.WithCause(err)
	}

	hash := argon2.IDKey([]byte(secret), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" + base64.RawStdEncoding.EncodeToString(hash), nil
}

// VerifyOperatorSecret checks a plaintext secret against a stored hash
// in constant time.
func VerifyOperatorSecret(secret, stored string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(secret), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// IsValidOperatorKeyID checks if a string is a valid operator key ID format.
func IsValidOperatorKeyID(id string) bool {
	id = strings.ToLower(id)
	if !strings.HasPrefix(id, OperatorKeyIDPrefix) {
		return false
	}
	// vlop- (5) + ULID (26) = 31 characters
	if len(id) != 31 {
		return false
	}
	_, err := ulid.Parse(strings.ToUpper(id[len(OperatorKeyIDPrefix):]))
	return err == nil
}

// MaskOperatorSecret masks a secret for safe logging.
func MaskOperatorSecret(secret string) string {
	if !strings.HasPrefix(secret, OperatorKeySecretPrefix) || len(secret) < 12 {
		return "***REDACTED***"
	}
	body := secret[len(OperatorKeySecretPrefix):]
	return OperatorKeySecretPrefix + body[:3] + "..." + body[len(body)-3:]
}
