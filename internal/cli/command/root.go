package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/voteledger-go/internal/cli/config"
	"github.com/yndnr/voteledger-go/internal/cli/connection"
	"github.com/yndnr/voteledger-go/internal/cli/output"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application. Saved config supplies the flag
// defaults; flags and environment variables override it.
func App() *cli.App {
	cfg, err := cliconfig.Load("")
	if err != nil {
		// A broken config file should not brick the CLI.
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = cliconfig.Default()
	}

	app := &cli.App{
		Name:    "voteledger-cli",
		Usage:   "VoteLedger command-line management tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(cfg),
		Commands: []*cli.Command{
			WeightCommand(),
			TokenCommand(),
			MintCommand(),
			TransferCommand(),
			StepCommand(),
			SystemCommand(),
			KeygenCommand(),
			ConfigCommand(),
			ReplCommand(),
		},
	}

	return app
}

// globalFlags returns the global CLI flags, defaulted from the saved
// config.
func globalFlags(cfg *cliconfig.CLIConfig) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "VoteLedger server address (e.g., localhost:5090)",
			EnvVars: []string{"VOTELEDGER_SERVER"},
			Value:   cfg.Server,
		},
		&cli.StringFlag{
			Name:    "operator-key-id",
			Aliases: []string{"k"},
			Usage:   "Operator key ID for mint and admin commands",
			EnvVars: []string{"VOTELEDGER_OPERATOR_KEY_ID"},
			Value:   cfg.OperatorKeyID,
		},
		&cli.StringFlag{
			Name:    "operator-key",
			Aliases: []string{"K"},
			Usage:   "Operator key secret",
			EnvVars: []string{"VOTELEDGER_OPERATOR_KEY"},
			Value:   cfg.OperatorKey,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   cfg.Output,
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
	}
}

// newClient builds the HTTP client from the global flags.
func newClient(c *cli.Context) *connection.Client {
	return connection.NewClient(
		c.String("server"),
		c.String("operator-key-id"),
		c.String("operator-key"),
	)
}

// formatter builds the output formatter from the global flags.
func formatter(c *cli.Context) output.Formatter {
	return output.NewFormatter(output.Format(c.String("output")), c.Bool("wide"))
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
