package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tidwall/resp"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/memkv/internal/cli/connection"
	"github.com/yndnr/memkv/internal/cli/output"
	"github.com/yndnr/memkv/internal/infra/buildinfo"
)

// DefaultServer is the address used when --server is not given.
const DefaultServer = "127.0.0.1:6379"

// ErrReply is returned by single-shot commands when the server replied
// with an error. The reply itself has already been printed.
var ErrReply = errors.New("server returned an error reply")

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "memkv-cli",
		Usage:   "memkv command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			ExecCommand(),
			REPLCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "memkv server address (host:port)",
			EnvVars: []string{"MEMKV_SERVER"},
			Value:   DefaultServer,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json",
			Value:   string(output.FormatText),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Timeout for connecting and for each single-shot request",
			Value:   5 * time.Second,
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server  string
	Output  output.Format
	Timeout time.Duration
}

// ParseGlobalFlags extracts and validates global flags from context.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return &GlobalFlags{
		Server:  c.String("server"),
		Output:  format,
		Timeout: c.Duration("timeout"),
	}, nil
}

// connect dials the server named by the global flags.
func connect(c *cli.Context, flags *GlobalFlags) (*connection.Client, error) {
	ctx := c.Context
	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}
	return connection.Dial(ctx, flags.Server)
}

// runOnce sends one request and prints its reply.
func runOnce(c *cli.Context, words []string) error {
	for _, w := range words {
		if strings.ContainsAny(w, "\r\n") {
			return fmt.Errorf("argument %q contains a line break", w)
		}
	}

	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	client, err := connect(c, flags)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := c.Context
	if flags.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
		defer cancel()
	}

	v, err := client.Do(ctx, words...)
	if err != nil {
		return err
	}
	return printReply(c, flags, v)
}

func printReply(c *cli.Context, flags *GlobalFlags, v resp.Value) error {
	if err := output.NewFormatter(flags.Output).Format(writer(c), v); err != nil {
		return err
	}
	if output.IsError(v) {
		return ErrReply
	}
	return nil
}

func reader(c *cli.Context) io.Reader {
	if c.App != nil && c.App.Reader != nil {
		return c.App.Reader
	}
	return os.Stdin
}

func writer(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}
