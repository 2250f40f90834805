package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer seeded with the CLI command set.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"weight", "weight history",
			"token", "token get", "token supply",
			"mint",
			"transfer",
			"step", "step advance", "step current",
			"system", "system status", "system health", "system gc",
			"keygen",
			"config", "config show", "config set", "config path",
			"help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Commands returns the full command list.
func (c *Completer) Commands() []string {
	return c.commands
}
