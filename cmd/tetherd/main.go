// Command tetherd serves a demo todo list over the remote host protocol.
//
// Usage:
//
//	tetherd serve [--config dir] [--addr :8080]
//	tetherd init [dir]
//	tetherd version
//
// The page connects to /ws and metrics are exposed at /metrics.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	terrors "github.com/vango-dev/tether/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var noColor bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tetherd",
		Short: "Serve tether views over a WebSocket",
		Long: `tetherd hosts a tether view tree behind the remote host protocol.

Each browser connection gets its own session. Events arrive as frames,
listeners run on the session loop, and the resulting patches are sent
back in a single batch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				terrors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(),
		initCmd(),
		versionCmd(),
		errorsCmd(),
	)

	return rootCmd
}

// printError writes err to w, using the error catalog layout for coded errors.
func printError(w io.Writer, err error) {
	var te *terrors.TetherError
	if errors.As(err, &te) {
		if noColor {
			fmt.Fprintln(w, te.FormatCompact())
		} else {
			fmt.Fprint(w, te.Format())
		}
		return
	}
	if noColor {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}
	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "ok %s\n", msg)
		return
	}
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", msg)
}
