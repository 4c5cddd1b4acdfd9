package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/memkv/internal/cli/output"
	"github.com/yndnr/memkv/internal/cli/repl"
	kvcommand "github.com/yndnr/memkv/internal/core/command"
)

// REPLCommand returns the interactive mode command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history",
				Usage: "History file (empty disables persistence)",
				Value: repl.DefaultHistoryPath(),
			},
		},
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	client, err := connect(c, flags)
	if err != nil {
		return err
	}
	defer client.Close()

	r := repl.New(client,
		repl.WithIO(reader(c), writer(c)),
		repl.WithFormatter(output.NewFormatter(flags.Output)),
		repl.WithHistory(repl.NewFileHistory(c.String("history"))),
		repl.WithPrompt(client.Addr()),
		repl.WithCommands(kvcommand.DefaultRegistry().Names()),
	)
	return r.Run(c.Context)
}
