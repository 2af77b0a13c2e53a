package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/formkit/internal/formspec"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "formcheck",
		Usage:   "Validate declarative form descriptions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: string(logger.FormatText),
				Usage: "log format (text, json)",
			},
		},
		Commands: []*cli.Command{
			validateCmd(),
			kindsCmd(),
		},
	}
}

// newLogger builds the command logger from the global flags. Logs go to the
// error writer so the report on stdout stays machine-readable.
func newLogger(cmd *cli.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cmd.String("log-level")))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cmd.String("log-level"))
	}
	format := logger.Format(cmd.String("log-format"))
	if format != logger.FormatText && format != logger.FormatJSON {
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.Root().ErrWriter),
		logger.WithAttr(logger.Component("formcheck")),
	), nil
}

func kindsCmd() *cli.Command {
	return &cli.Command{
		Name:  "kinds",
		Usage: "List the rule kinds a form description may use",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, k := range formspec.Kinds() {
				if _, err := fmt.Fprintln(cmd.Root().Writer, k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
