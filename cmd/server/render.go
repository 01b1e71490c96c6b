package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AmrMohamed17/smart-cv-builder/internal/usecase"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
	infra "github.com/AmrMohamed17/smart-cv-builder/pkg/infrastructure"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	renderIn   string
	renderOut  string
	renderHTML bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a stored resume document to PDF or HTML",
	Long: `Render a resume JSON document (flat or section-list shape, e.g. a session's
parsed.json) through the same template and renderer as the web export.

Example:
  smart-cv-builder render --in uploads/<session>/parsed.json --out CV.pdf
  smart-cv-builder render --in parsed.json --out preview.html --html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runRender(ctx)
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	renderCmd.Flags().StringVar(&renderIn, "in", "", "resume JSON document to render")
	renderCmd.Flags().StringVar(&renderOut, "out", usecase.ExportFilename, "output file")
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "write the HTML preview instead of a PDF")
	_ = renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}

func runRender(ctx context.Context) error {
	cfg := config.Load()
	log := newLogger(cfg)

	b, err := os.ReadFile(renderIn)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	doc, err := usecase.DecodeSubmitted(b)
	if err != nil {
		return err
	}

	exporter := usecase.NewExporter(infra.NewChromedpRenderer(cfg.ChromePath, cfg.PDFTimeout), nil, log)
	var out []byte
	if renderHTML {
		html, err := exporter.Preview(ctx, doc)
		if err != nil {
			return err
		}
		out = []byte(html)
	} else if out, err = exporter.Export(ctx, doc, nil); err != nil {
		return err
	}

	if err := os.WriteFile(renderOut, out, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	fmt.Printf("wrote %s (%d bytes)\n", renderOut, len(out))
	return nil
}
