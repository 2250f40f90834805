package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/voteledger-go/internal/cli/output"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Server management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show server status summary (operator key required)",
				Action: systemStatus,
			},
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: systemHealth,
			},
			{
				Name:   "gc",
				Usage:  "Trigger storage garbage collection (operator key required)",
				Action: systemGC,
			},
		},
	}
}

func systemStatus(c *cli.Context) error {
	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := client.Status(ctx)
	if err != nil {
		return err
	}

	return formatter(c).Format(os.Stdout, status)
}

func systemHealth(c *cli.Context) error {
	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := client.Health(ctx)
	if err != nil {
		PrintError("health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}

	fmt.Printf("server is %s\n", status)
	return nil
}

func systemGC(c *cli.Context) error {
	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	spinner := output.NewSpinner(os.Stdout, "running garbage collection")
	spinner.Start()
	result, err := client.TriggerGC(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("reclaimed %d bytes\n", result.ReclaimedBytes)
	return nil
}
