package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/yndnr/voteledger-go/internal/cli/config"
	"github.com/yndnr/voteledger-go/internal/cli/output"
	"github.com/yndnr/voteledger-go/internal/telemetry/logger"
)

// ConfigCommand returns the CLI configuration command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the CLI configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the current CLI configuration",
				Action: configShow,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration value",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, err := cliconfig.Load("")
	if err != nil {
		return err
	}

	table := &output.Table{Headers: []string{"KEY", "VALUE"}}
	table.AddRow("server", cfg.Server)
	table.AddRow("output", cfg.Output)
	table.AddRow("operator_key_id", cfg.OperatorKeyID)
	table.AddRow("operator_key", logger.RedactString(cfg.OperatorKey))
	return table.Render(os.Stdout)
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected KEY and VALUE arguments")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	cfg, err := cliconfig.Load("")
	if err != nil {
		return err
	}

	switch key {
	case "server":
		cfg.Server = value
	case "output":
		if value != "table" && value != "json" && value != "yaml" {
			return fmt.Errorf("output must be table, json, or yaml")
		}
		cfg.Output = value
	case "operator_key_id":
		cfg.OperatorKeyID = value
	case "operator_key":
		cfg.OperatorKey = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := cliconfig.Save(cfg, ""); err != nil {
		return err
	}
	fmt.Printf("set %s\n", key)
	return nil
}

func configPath(c *cli.Context) error {
	fmt.Println(cliconfig.DefaultConfigPath())
	return nil
}
