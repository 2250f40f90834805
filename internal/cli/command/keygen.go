package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/voteledger-go/internal/core/domain"
)

// KeygenCommand returns the operator key generation command. The key
// is generated locally; the printed hash goes into the server config
// and the secret is shown exactly once.
func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate an operator key for the server configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Human-readable key label",
				Required: true,
			},
		},
		Action: keygen,
	}
}

func keygen(c *cli.Context) error {
	key, secret, err := domain.GenerateOperatorKey(c.String("name"))
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	fmt.Printf("Key ID:      %s\n", key.KeyID)
	fmt.Printf("Secret:      %s\n", secret)
	fmt.Printf("Secret hash: %s\n", key.SecretHash)
	fmt.Println()
	fmt.Println("Store the secret now; it cannot be recovered.")
	fmt.Println("Add to the server config under security.operator_keys:")
	fmt.Println()
	fmt.Printf("  - key_id: %s\n", key.KeyID)
	fmt.Printf("    name: %s\n", key.Name)
	fmt.Printf("    secret_hash: %s\n", key.SecretHash)
	return nil
}
