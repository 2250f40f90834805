package config

import "time"

// ServerConfig is the root configuration for voteledger-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Storage  StorageSection  `koanf:"storage"`
	Ledger   LedgerSection   `koanf:"ledger"`
	Security SecuritySection `koanf:"security"`
	Limits   LimitsSection   `koanf:"limits"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StorageSection configures storage behavior.
type StorageSection struct {
	// Engine selects the KV engine ("badger", "memory").
	Engine  string       `koanf:"engine"`
	DataDir string       `koanf:"data_dir"`
	Badger  BadgerConfig `koanf:"badger"`
}

// BadgerConfig tunes the Badger engine.
type BadgerConfig struct {
	GCInterval       time.Duration `koanf:"gc_interval"`
	GCThreshold      float64       `koanf:"gc_threshold"`
	CacheSize        int64         `koanf:"cache_size"`
	ValueLogFileSize int64         `koanf:"value_log_file_size"`
	NumMemtables     int           `koanf:"num_memtables"`
	SyncWrites       bool          `koanf:"sync_writes"`
}

// LedgerSection configures ledger behavior.
type LedgerSection struct {
	// MaxSupply caps the number of mintable tokens.
	MaxSupply uint64 `koanf:"max_supply"`
}

// SecuritySection configures security settings.
type SecuritySection struct {
	// OperatorKeys grant mint and admin authority.
	OperatorKeys []OperatorKeyConfig `koanf:"operator_keys"`
}

// OperatorKeyConfig is one configured operator key.
// SecretHash is the argon2id hash as produced by the keygen command;
// plaintext secrets never appear in configuration.
type OperatorKeyConfig struct {
	KeyID      string `koanf:"key_id"`
	Name       string `koanf:"name"`
	SecretHash string `koanf:"secret_hash"`
}

// LimitsSection configures request throttling.
type LimitsSection struct {
	// RateLimit is the sustained requests/second per client IP.
	// Zero disables throttling.
	RateLimit float64 `koanf:"rate_limit"`
	// RateBurst is the burst allowance per client IP.
	RateBurst int `koanf:"rate_burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
