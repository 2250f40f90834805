package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5090"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultStorageEngine = "badger"
	DefaultDataDir       = "/var/lib/voteledger-server/data"

	DefaultGCInterval       = 10 * time.Minute
	DefaultGCThreshold      = 0.5
	DefaultCacheSize        = 64 << 20 // 64MB
	DefaultValueLogFileSize = 1 << 30  // 1GB
	DefaultNumMemtables     = 2

	DefaultMaxSupply = 10_000

	DefaultRateLimit = 100.0
	DefaultRateBurst = 200

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
			},
		},
		Storage: StorageSection{
			Engine:  DefaultStorageEngine,
			DataDir: DefaultDataDir,
			Badger: BadgerConfig{
				GCInterval:       DefaultGCInterval,
				GCThreshold:      DefaultGCThreshold,
				CacheSize:        DefaultCacheSize,
				ValueLogFileSize: DefaultValueLogFileSize,
				NumMemtables:     DefaultNumMemtables,
				SyncWrites:       true,
			},
		},
		Ledger: LedgerSection{
			MaxSupply: DefaultMaxSupply,
		},
		Limits: LimitsSection{
			RateLimit: DefaultRateLimit,
			RateBurst: DefaultRateBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
