package service

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// AuthService verifies operator keys.
//
// Keys are loaded from configuration at startup; the ledger has no
// self-service key management. Verification compares the presented
// secret against the stored Argon2id hash in constant time.
type AuthService struct {
	logger *slog.Logger

	mu   sync.RWMutex
	keys map[string]*domain.OperatorKey // KeyID (lowercase) -> key
}

// NewAuthService creates an AuthService with the given keys.
func NewAuthService(keys []*domain.OperatorKey, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	byID := make(map[string]*domain.OperatorKey, len(keys))
	for _, k := range keys {
		byID[strings.ToLower(k.KeyID)] = k
	}

	return &AuthService{
		logger: logger,
		keys:   byID,
	}
}

// Verify checks an operator key ID and secret pair.
func (s *AuthService) Verify(keyID, secret string) error {
	if keyID == "" || secret == "" {
		return domain.ErrAuthRequired
	}
	if !domain.IsValidOperatorKeyID(keyID) {
		return domain.ErrAuthInvalid.WithDetails("malformed key id")
	}

	s.mu.RLock()
	key, ok := s.keys[strings.ToLower(keyID)]
	s.mu.RUnlock()

	if !ok {
		return domain.ErrAuthInvalid
	}
	if !domain.VerifyOperatorSecret(secret, key.SecretHash) {
		s.logger.Warn("operator key verification failed", "key_id", keyID)
		return domain.ErrAuthInvalid
	}
	return nil
}

// HasKeys reports whether any operator keys are configured.
// With no keys, mint and admin endpoints refuse all callers.
func (s *AuthService) HasKeys() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys) > 0
}
