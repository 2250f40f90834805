package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyLedger(&cfg.Ledger); err != nil {
		return err
	}
	if err := verifySecurity(&cfg.Security); err != nil {
		return err
	}
	return verifyLimits(&cfg.Limits)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr %q is not host:port: %w", cfg.HTTP.Addr, err)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch strings.ToLower(cfg.Engine) {
	case "badger":
		if cfg.DataDir == "" {
			return errors.New("storage.data_dir is required for the badger engine")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
			return errors.New("cannot create data directory: " + err.Error())
		}
	case "memory":
		// nothing to prepare
	default:
		return fmt.Errorf("storage.engine %q is not supported (badger, memory)", cfg.Engine)
	}

	if cfg.Badger.GCThreshold < 0 || cfg.Badger.GCThreshold > 1 {
		return errors.New("storage.badger.gc_threshold must be in [0, 1]")
	}
	return nil
}

func verifyLedger(cfg *LedgerSection) error {
	if cfg.MaxSupply == 0 {
		return errors.New("ledger.max_supply must be positive")
	}
	return nil
}

func verifySecurity(cfg *SecuritySection) error {
	seen := make(map[string]bool, len(cfg.OperatorKeys))
	for i, k := range cfg.OperatorKeys {
		if !domain.IsValidOperatorKeyID(k.KeyID) {
			return fmt.Errorf("security.operator_keys[%d]: malformed key_id %q", i, k.KeyID)
		}
		if !strings.Contains(k.SecretHash, "$") {
			return fmt.Errorf("security.operator_keys[%d]: secret_hash is not salt$hash", i)
		}
		id := strings.ToLower(k.KeyID)
		if seen[id] {
			return fmt.Errorf("security.operator_keys[%d]: duplicate key_id %q", i, k.KeyID)
		}
		seen[id] = true
	}
	return nil
}

func verifyLimits(cfg *LimitsSection) error {
	if cfg.RateLimit < 0 {
		return errors.New("limits.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return errors.New("limits.rate_burst must be at least 1 when throttling is on")
	}
	return nil
}
