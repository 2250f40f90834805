// Package adaptive provides authenticated encryption with the AEAD
// suite picked for the host: AES-256-GCM where hardware AES is
// available (amd64, arm64), ChaCha20-Poly1305 elsewhere.
//
// The CLI uses it to keep the operator secret encrypted at rest in
// its config file. Ciphertexts carry their nonce as a prefix, so a
// value sealed on one host opens on another as long as the suite's
// key is the same 32 bytes.
package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the key length accepted by New, in bytes.
const KeySize = 32

// Suite names an AEAD construction.
type Suite string

const (
	SuiteAESGCM   Suite = "aes256-gcm"
	SuiteChaCha20 Suite = "chacha20-poly1305"
)

var errCiphertextShort = errors.New("adaptive: ciphertext shorter than nonce")

// Cipher seals and opens messages with a fixed 32-byte key.
type Cipher struct {
	aead  cipher.AEAD
	suite Suite
}

// New creates a Cipher keyed with key, selecting the suite by
// architecture. The key must be exactly KeySize bytes.
func New(key []byte) (*Cipher, error) {
	return NewSuite(key, preferredSuite())
}

// NewSuite creates a Cipher using a specific suite.
func NewSuite(key []byte, suite Suite) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("adaptive: key must be %d bytes, got %d", KeySize, len(key))
	}
	aead, err := newAEAD(key, suite)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead, suite: suite}, nil
}

// Suite reports which AEAD construction the cipher uses.
func (c *Cipher) Suite() Suite { return c.suite }

// Overhead is the ciphertext expansion in bytes: nonce prefix plus
// authentication tag.
func (c *Cipher) Overhead() int {
	return c.aead.NonceSize() + c.aead.Overhead()
}

// Encrypt seals plaintext under a fresh random nonce. additionalData
// is authenticated but not encrypted; Decrypt must receive the same
// bytes.
func (c *Cipher) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("adaptive: nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Decrypt opens a ciphertext produced by Encrypt. It fails if the
// ciphertext was tampered with or additionalData differs from the
// value given at encryption time.
func (c *Cipher) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(ciphertext) < ns {
		return nil, errCiphertextShort
	}
	return c.aead.Open(nil, ciphertext[:ns], ciphertext[ns:], additionalData)
}

func newAEAD(key []byte, suite Suite) (cipher.AEAD, error) {
	switch suite {
	case SuiteAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case SuiteChaCha20:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("adaptive: unknown suite %q", suite)
	}
}

// preferredSuite picks AES-GCM where Go's crypto/aes is backed by
// hardware instructions, ChaCha20-Poly1305 everywhere else.
func preferredSuite() Suite {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return SuiteAESGCM
	default:
		return SuiteChaCha20
	}
}
