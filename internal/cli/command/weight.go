package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/voteledger-go/internal/cli/output"
)

// WeightCommand returns the weight query command group.
func WeightCommand() *cli.Command {
	return &cli.Command{
		Name:      "weight",
		Usage:     "Query an account's voting weight",
		ArgsUsage: "ACCOUNT",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "step",
				Usage: "Query the weight at a past step instead of the current one",
			},
		},
		Action: weightQuery,
		Subcommands: []*cli.Command{
			{
				Name:      "history",
				Usage:     "Show an account's full checkpoint log",
				ArgsUsage: "ACCOUNT",
				Action:    weightHistory,
			},
		},
	}
}

func weightQuery(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one ACCOUNT argument")
	}
	account := c.Args().First()

	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		result any
		err    error
	)
	if c.IsSet("step") {
		result, err = client.WeightAt(ctx, account, uint32(c.Uint("step")))
	} else {
		result, err = client.CurrentWeight(ctx, account)
	}
	if err != nil {
		return err
	}

	return formatter(c).Format(os.Stdout, result)
}

func weightHistory(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one ACCOUNT argument")
	}
	account := c.Args().First()

	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Checkpoints(ctx, account)
	if err != nil {
		return err
	}

	switch output.Format(c.String("output")) {
	case output.FormatJSON, output.FormatYAML:
		return formatter(c).Format(os.Stdout, result)
	default:
		table := &output.Table{Headers: []string{"STEP", "WEIGHT"}}
		for _, cp := range result.Checkpoints {
			table.AddRow(cp.Step, cp.Weight)
		}
		if len(result.Checkpoints) == 0 {
			fmt.Printf("no checkpoints for account %s\n", account)
			return nil
		}
		return table.Render(os.Stdout)
	}
}
