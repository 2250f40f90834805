package config

// CLIConfig is the configuration for voteledger-cli.
type CLIConfig struct {
	// Server is the default server address.
	Server string `yaml:"server"`

	// Output is the default output format: table, json, yaml.
	Output string `yaml:"output"`

	// OperatorKeyID and OperatorKey form the saved operator
	// credential, used for mint and admin commands.
	OperatorKeyID string `yaml:"operator_key_id"`
	OperatorKey   string `yaml:"operator_key"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: "http://127.0.0.1:5090",
		Output: "table",
	}
}
