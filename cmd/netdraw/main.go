package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netdraw/internal/cli"
	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// Exit codes.
const (
	exitError     = 1
	exitBadInput  = 2
	exitCancelled = 130 // Standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Apply the log level once flags are parsed
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

// exitCode maps input and structure problems to 2 and everything else to 1.
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitCancelled
	case errs.IsStructural(err),
		errs.Is(err, errs.ErrCodeInvalidInput),
		errs.Is(err, errs.ErrCodeInvalidFormat),
		errs.Is(err, errs.ErrCodeInvalidOptions),
		errs.Is(err, errs.ErrCodeFileNotFound),
		errs.Is(err, errs.ErrCodeSheetNotFound),
		errs.Is(err, errs.ErrCodeUnsupportedSource):
		return exitBadInput
	default:
		return exitError
	}
}
