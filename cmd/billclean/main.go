// Command billclean cleans the 2009 billionaire roster CSV.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wdm0006/billclean/pkg/billionaire"
	"github.com/wdm0006/billclean/pkg/profile"
)

var version = "0.1.0-dev"

type rootOptions struct {
	configPath string
	verbose    bool
	strict     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "billclean [input] [output]",
		Short: "Clean the billionaire roster CSV",
		Long: `billclean repairs known bad literals, types the Age column, fills missing
Name, Citizenship and Residence values with "Unknown", imputes missing ages
from the citizenship group mean and drops rows without a net worth or rank.

Paths come from positional arguments, then --input/--output, then the
config file, then the defaults.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, opts)
		},
	}
	cmd.SetVersionTemplate("billclean {{.Version}}\n")

	fs := cmd.Flags()
	fs.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml, .toml or .json) with input and output keys")
	fs.String("input", billionaire.DefaultInput, "Path of the raw roster")
	fs.String("output", billionaire.DefaultOutput, "Path of the cleaned roster (.csv, .jsonl, .parquet; .gz to compress)")
	fs.BoolVar(&opts.strict, "strict", false, "Fail on records whose field count differs from the header")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging and a column profile of the result")
	return cmd
}

// missingSourceError is the console message for an input that does not exist.
type missingSourceError struct{ path string }

func (e missingSourceError) Error() string { return fmt.Sprintf("File '%s' not found.", e.path) }

func runClean(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := loadConfig(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	c := billionaire.NewCleaner()
	c.Logger = logger
	c.Strict = opts.strict
	rep, err := c.Clean(cmd.Context(), cfg.Input, cfg.Output)
	if err != nil {
		if errors.Is(err, billionaire.ErrSourceNotFound) {
			return missingSourceError{path: cfg.Input}
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.verbose {
		c := profile.NewCollector(rep.Frame.Schema(), 3)
		c.ConsumeFrame(rep.Frame)
		c.RenderTable(out)
	}
	fmt.Fprintf(out, "Cleaned data saved to '%s'\n", cfg.Output)
	return nil
}

// execute runs cmd and reports a failure on stderr; it returns the exit code.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd(), os.Stderr))
}
