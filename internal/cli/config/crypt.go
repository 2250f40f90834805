package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/voteledger-go/pkg/crypto/adaptive"
	"github.com/yndnr/voteledger-go/pkg/token"
)

// encryptedPrefix marks an encrypted value in the config file.
const encryptedPrefix = "enc:"

// keyringBytes is the keyring key size (AES-256 / ChaCha20).
const keyringBytes = 32

// keyringPath returns the keyring file next to the config file.
func keyringPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "secret.key")
}

// loadOrCreateKeyring reads the local keyring, creating it on first
// use.
func loadOrCreateKeyring(configPath string) ([]byte, error) {
	path := keyringPath(configPath)

	data, err := os.ReadFile(path)
	if err == nil {
		key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil || len(key) != keyringBytes {
			return nil, fmt.Errorf("keyring %s is corrupt", path)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	key, err := token.GenerateBytes(keyringBytes)
	if err != nil {
		return nil, fmt.Errorf("generate keyring: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create keyring dir: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key) + "\n"
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("write keyring: %w", err)
	}
	return key, nil
}

// encryptSecret encrypts the operator secret, binding it to the key
// ID so a ciphertext cannot be replayed under another credential.
func encryptSecret(configPath, secret, keyID string) (string, error) {
	key, err := loadOrCreateKeyring(configPath)
	if err != nil {
		return "", err
	}
	c, err := adaptive.New(key)
	if err != nil {
		return "", err
	}
	sealed, err := c.Encrypt([]byte(secret), []byte(keyID))
	if err != nil {
		return "", err
	}
	return encryptedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// decryptSecret reverses encryptSecret.
func decryptSecret(configPath, stored, keyID string) (string, error) {
	encoded := strings.TrimPrefix(stored, encryptedPrefix)
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("operator key is not valid base64: %w", err)
	}

	key, err := loadOrCreateKeyring(configPath)
	if err != nil {
		return "", err
	}
	c, err := adaptive.New(key)
	if err != nil {
		return "", err
	}
	plain, err := c.Decrypt(sealed, []byte(keyID))
	if err != nil {
		return "", fmt.Errorf("decrypt operator key: %w", err)
	}
	return string(plain), nil
}
