package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/voteledger-go/internal/cli/repl"
)

// ReplCommand returns the interactive mode command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Action: func(c *cli.Context) error {
			r := repl.New(func(args []string) error {
				return c.App.Run(append([]string{c.App.Name}, args...))
			})
			return r.Run()
		},
	}
}
