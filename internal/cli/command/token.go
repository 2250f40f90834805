package command

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

// TokenCommand returns the token subcommand group.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Token inspection commands",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Look up a token's current owner",
				ArgsUsage: "TOKEN_ID",
				Action:    tokenGet,
			},
			{
				Name:   "supply",
				Usage:  "Show total and maximum token supply",
				Action: tokenSupply,
			},
		},
	}
}

// MintCommand returns the mint command. Requires an operator key.
func MintCommand() *cli.Command {
	return &cli.Command{
		Name:      "mint",
		Usage:     "Mint a new token for an account (operator key required)",
		ArgsUsage: "RECIPIENT",
		Action:    tokenMint,
	}
}

// TransferCommand returns the transfer command.
func TransferCommand() *cli.Command {
	return &cli.Command{
		Name:      "transfer",
		Usage:     "Transfer a token to another account",
		ArgsUsage: "TOKEN_ID TO",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Aliases:  []string{"f"},
				Usage:    "Account that currently owns the token",
				Required: true,
			},
		},
		Action: tokenTransfer,
	}
}

func parseTokenArg(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("TOKEN_ID must be a positive integer, got %q", s)
	}
	return id, nil
}

func tokenGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one TOKEN_ID argument")
	}
	id, err := parseTokenArg(c.Args().First())
	if err != nil {
		return err
	}

	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Token(ctx, id)
	if err != nil {
		return err
	}
	return formatter(c).Format(os.Stdout, result)
}

func tokenSupply(c *cli.Context) error {
	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Supply(ctx)
	if err != nil {
		return err
	}
	return formatter(c).Format(os.Stdout, result)
}

func tokenMint(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one RECIPIENT argument")
	}
	recipient := c.Args().First()

	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Mint(ctx, recipient)
	if err != nil {
		return err
	}

	fmt.Printf("minted token %d for %s at step %d\n", result.TokenID, result.Recipient, result.Step)
	return nil
}

func tokenTransfer(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected TOKEN_ID and TO arguments")
	}
	id, err := parseTokenArg(c.Args().Get(0))
	if err != nil {
		return err
	}
	to := c.Args().Get(1)
	from := c.String("from")

	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Transfer(ctx, id, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("transferred token %d from %s to %s at step %d\n",
		result.TokenID, result.From, result.To, result.Step)
	return nil
}
