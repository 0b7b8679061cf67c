package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const appName = "financier"

// set with -ldflags at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	serve := serveCmd()

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Expat's Financier Telegram bot",
		Long: `Expat's Financier walks a user through a short money profile over
Telegram and keeps a dashboard of income, expenses, savings and
emergency fund. Configuration is read from the environment and an
optional .env file.`,
		RunE:          serve.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serve, pollCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Receive Telegram updates on an HTTP webhook (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func pollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Receive Telegram updates by long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			return poll(cmd.Context())
		},
	}
}
