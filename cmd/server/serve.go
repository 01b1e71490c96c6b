package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/AmrMohamed17/smart-cv-builder/internal/adapter/http"
	repo "github.com/AmrMohamed17/smart-cv-builder/internal/adapter/repository"
	"github.com/AmrMohamed17/smart-cv-builder/internal/usecase"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/ai"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/github"
	infra "github.com/AmrMohamed17/smart-cv-builder/pkg/infrastructure"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/textextract"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	log := newLogger(cfg)

	if cfg.LLM.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; uploads will fail until it is configured")
	}

	store := repo.NewFilesRepo(cfg.UploadDir, log)
	renderer := infra.NewChromedpRenderer(cfg.ChromePath, cfg.PDFTimeout)
	processor := usecase.NewProcessor(
		store,
		textextract.New(),
		github.NewClient(cfg.GitHub, nil, log),
		ai.NewClient(cfg.LLM, nil, log),
		log,
	).WithGitHubAuth(cfg.GitHub.Authenticated)

	h := httpadapter.NewHandler(processor, usecase.NewEditor(store), usecase.NewExporter(renderer, store, log), log)
	app := httpadapter.NewApp(h, cfg.MaxUploadBytes, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("port", cfg.Port), slog.String("llm_backend", cfg.LLM.Backend), slog.String("upload_dir", cfg.UploadDir))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
