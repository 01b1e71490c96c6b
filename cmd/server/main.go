package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "smart-cv-builder",
	Short: "Build a tailored resume from an uploaded CV, LinkedIn export and GitHub profile",
	Long: `smart-cv-builder serves a web form that turns an uploaded resume, an optional
LinkedIn export and GitHub username into a structured resume with Gemini,
lets the user edit it and exports it as an A4 PDF.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger installs the process-wide slog handler described by cfg.
func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	log := slog.New(h)
	slog.SetDefault(log)
	return log
}
