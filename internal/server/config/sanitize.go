package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging configuration without exposing secrets.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg

	if len(cfg.Security.OperatorKeys) > 0 {
		keys := make([]OperatorKeyConfig, len(cfg.Security.OperatorKeys))
		copy(keys, cfg.Security.OperatorKeys)
		for i := range keys {
			keys[i].SecretHash = maskSecret(keys[i].SecretHash)
		}
		sanitized.Security.OperatorKeys = keys
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
