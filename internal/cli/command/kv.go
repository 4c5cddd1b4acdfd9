package command

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/urfave/cli/v2"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: get KEY")
			}
			return runOnce(c, []string{"GET", c.Args().First()})
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value",
		ArgsUsage: "KEY VALUE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: set KEY VALUE")
			}
			key, value := c.Args().Get(0), c.Args().Get(1)
			// The server splits on any Unicode space, so reject the same set.
			if strings.ContainsFunc(key+value, unicode.IsSpace) {
				return fmt.Errorf("usage: set KEY VALUE (KEY and VALUE must not contain whitespace)")
			}
			return runOnce(c, []string{"SET", key, value})
		},
	}
}

// ExecCommand returns the exec command, which sends any words verbatim.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Send a raw command line to the server",
		ArgsUsage: "WORD...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("usage: exec WORD...")
			}
			return runOnce(c, c.Args().Slice())
		},
	}
}
