package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veld-dev/veld/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┌─┐┬  ┌┬┐
  ╚╗╔╝├┤ │   ││
   ╚╝ └─┘┴─┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "veld",
		Short: "The Go toolkit for client-side UI",
		Long: `Veld renders component trees into a live DOM from Go.

Write components as plain Go functions with hooks for state and
effects, route between pages on the client, and share state through
a predictable store. The CLI scaffolds projects, runs the hot-reload
development server, builds for production, and deploys the output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		createCmd(),
		devCmd(),
		buildCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ve *errors.VeldError
		if stderrors.As(err, &ve) {
			ve.Print()
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
