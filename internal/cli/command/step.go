package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

// StepCommand returns the step clock command group. All subcommands
// require an operator key.
func StepCommand() *cli.Command {
	return &cli.Command{
		Name:  "step",
		Usage: "Step clock commands (operator key required)",
		Subcommands: []*cli.Command{
			{
				Name:      "advance",
				Usage:     "Advance the step clock; without STEP it ticks by one",
				ArgsUsage: "[STEP]",
				Action:    stepAdvance,
			},
			{
				Name:   "current",
				Usage:  "Show the current step",
				Action: stepCurrent,
			},
		},
	}
}

func stepAdvance(c *cli.Context) error {
	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if c.NArg() == 0 {
		result, err := client.TickStep(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("step clock at %d\n", result.Step)
		return nil
	}

	step64, err := strconv.ParseUint(c.Args().First(), 10, 32)
	if err != nil || step64 == 0 {
		return fmt.Errorf("STEP must be a positive 32-bit integer, got %q", c.Args().First())
	}

	result, err := client.AdvanceStep(ctx, uint32(step64))
	if err != nil {
		return err
	}
	fmt.Printf("step clock at %d\n", result.Step)
	return nil
}

func stepCurrent(c *cli.Context) error {
	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := client.Status(ctx)
	if err != nil {
		return err
	}

	step, ok := status["step"].(float64)
	if !ok {
		return fmt.Errorf("status summary missing step")
	}
	fmt.Printf("%d\n", uint32(step))
	return nil
}
