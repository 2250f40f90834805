package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

func validConfig(t *testing.T) *ServerConfig {
	t.Helper()
	cfg := Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("http addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Storage.Engine != "badger" {
		t.Errorf("storage engine = %q, want badger", cfg.Storage.Engine)
	}
	if !cfg.Storage.Badger.SyncWrites {
		t.Error("sync_writes should default to true")
	}
	if cfg.Ledger.MaxSupply != DefaultMaxSupply {
		t.Errorf("max supply = %d, want %d", cfg.Ledger.MaxSupply, DefaultMaxSupply)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Log.Format)
	}
}

func TestVerifyValid(t *testing.T) {
	if err := Verify(validConfig(t)); err != nil {
		t.Errorf("Verify() on defaults = %v, want nil", err)
	}
}

func TestVerifyErrors(t *testing.T) {
	key, _, err := domain.GenerateOperatorKey("test")
	if err != nil {
		t.Fatalf("GenerateOperatorKey failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:    "missing http addr",
			mutate:  func(c *ServerConfig) { c.Server.HTTP.Addr = "" },
			wantErr: "server.http.addr",
		},
		{
			name:    "addr without port",
			mutate:  func(c *ServerConfig) { c.Server.HTTP.Addr = "localhost" },
			wantErr: "host:port",
		},
		{
			name:    "unknown engine",
			mutate:  func(c *ServerConfig) { c.Storage.Engine = "sqlite" },
			wantErr: "storage.engine",
		},
		{
			name: "badger without data dir",
			mutate: func(c *ServerConfig) {
				c.Storage.Engine = "badger"
				c.Storage.DataDir = ""
			},
			wantErr: "storage.data_dir",
		},
		{
			name:    "gc threshold out of range",
			mutate:  func(c *ServerConfig) { c.Storage.Badger.GCThreshold = 1.5 },
			wantErr: "gc_threshold",
		},
		{
			name:    "zero max supply",
			mutate:  func(c *ServerConfig) { c.Ledger.MaxSupply = 0 },
			wantErr: "ledger.max_supply",
		},
		{
			name: "malformed operator key id",
			mutate: func(c *ServerConfig) {
				c.Security.OperatorKeys = []OperatorKeyConfig{
					{KeyID: "bogus", SecretHash: "a$b"},
				}
			},
			wantErr: "key_id",
		},
		{
			name: "malformed secret hash",
			mutate: func(c *ServerConfig) {
				c.Security.OperatorKeys = []OperatorKeyConfig{
					{KeyID: key.KeyID, SecretHash: "nodollar"},
				}
			},
			wantErr: "secret_hash",
		},
		{
			name: "duplicate operator key id",
			mutate: func(c *ServerConfig) {
				c.Security.OperatorKeys = []OperatorKeyConfig{
					{KeyID: key.KeyID, SecretHash: key.SecretHash},
					{KeyID: strings.ToUpper(key.KeyID[:5]) + key.KeyID[5:], SecretHash: key.SecretHash},
				}
			},
			wantErr: "duplicate",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *ServerConfig) { c.Limits.RateLimit = -1 },
			wantErr: "rate_limit",
		},
		{
			name: "zero burst with throttling on",
			mutate: func(c *ServerConfig) {
				c.Limits.RateLimit = 10
				c.Limits.RateBurst = 0
			},
			wantErr: "rate_burst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyMemoryEngineNeedsNoDataDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Engine = "memory"
	cfg.Storage.DataDir = ""

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() = %v, want nil for memory engine", err)
	}
}

func TestSanitize(t *testing.T) {
	key, _, err := domain.GenerateOperatorKey("test")
	if err != nil {
		t.Fatalf("GenerateOperatorKey failed: %v", err)
	}

	cfg := Default()
	cfg.Security.OperatorKeys = []OperatorKeyConfig{
		{KeyID: key.KeyID, Name: "test", SecretHash: key.SecretHash},
	}

	sanitized := Sanitize(cfg)

	if sanitized.Security.OperatorKeys[0].SecretHash == key.SecretHash {
		t.Error("Sanitize() should mask secret_hash")
	}
	if !strings.Contains(sanitized.Security.OperatorKeys[0].SecretHash, "*") {
		t.Error("masked secret_hash should contain asterisks")
	}

	// The original must be untouched.
	if cfg.Security.OperatorKeys[0].SecretHash != key.SecretHash {
		t.Error("Sanitize() must not mutate the input config")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "****"},
		{"abcdef", "ab**ef"},
	}
	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
