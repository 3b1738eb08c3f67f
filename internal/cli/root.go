// Package cli implements the fseq command line tool.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app carries state shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger

	logLevel  string
	logFormat string
}

// NewRoot constructs the root command with the info and write subcommands.
// Command output goes to out; logs and errors go to errOut.
func NewRoot(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "fseq",
		Short: "Inspect and rewrite FSEQ v2 sequence files",
		Long: `fseq reads FSEQ version 2 lighting sequence files, optionally wrapped in a
zstd (.zst), s2 (.s2) or lz4 (.lz4) container, prints their metadata and
frame data, and writes them back with edited variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := a.logLevel
			if !cmd.Flags().Changed("log-level") {
				level = levelFromEnv(level)
			}

			logger, err := newLogger(a.errOut, level, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger

			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error); env "+envLogLevel)
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newInfoCommand(a))
	root.AddCommand(newWriteCommand(a))

	return root
}
