// justicelens serves and plays the Justice Lens case explorer.
//
// Usage:
//
//	justicelens serve [--port=<port>]
//	justicelens play
//	justicelens cases [--json]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "justicelens",
	Short: "Explore real criminal cases where bias may have played a role",
	Long: "Justice Lens presents real cases, asks you to judge them, then reveals\n" +
		"an unbiased AI judgment, the real outcome and an educational note.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
