package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"github.com/AmrMohamed17/smart-cv-builder/internal/view"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ExportFilename is the download name of exported resumes.
const ExportFilename = "CV.pdf"

// Exporter renders submitted documents to HTML or PDF.
type Exporter struct {
	renderer Renderer
	store    DocumentStore
	log      *slog.Logger
}

func NewExporter(renderer Renderer, store DocumentStore, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{renderer: renderer, store: store, log: log}
}

// DecodeSubmitted parses a request body into a document. Either shape is
// accepted; only a body that is not a JSON object is rejected.
func DecodeSubmitted(body []byte) (model.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperr.NewValidationError("body", "a JSON resume document is required")
	}
	var doc model.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperr.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if doc == nil {
		return nil, apperr.NewValidationError("body", "resume must be a JSON object")
	}
	return doc, nil
}

// checkShape logs schema problems in doc. Rendering goes ahead regardless:
// fields of the wrong type render empty or as text.
func (e *Exporter) checkShape(doc model.Document) {
	err := model.ValidateSubmitted(doc)
	if err == nil {
		return
	}
	var serr *model.SchemaError
	if errors.As(err, &serr) {
		e.log.Warn("submitted document does not match schema", slog.Any("problems", serr.Problems))
		return
	}
	e.log.Error("schema check failed", slog.String("error", err.Error()))
}

// Preview renders doc to HTML. Nothing is stored.
func (e *Exporter) Preview(ctx context.Context, doc model.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.checkShape(doc)
	return view.Resume(model.DecodeDynamic(model.ToDynamic(doc)))
}

// Export renders doc to PDF. When session is set, the normalised document
// replaces the session's stored one first.
func (e *Exporter) Export(ctx context.Context, doc model.Document, session *uuid.UUID) ([]byte, error) {
	e.checkShape(doc)
	doc = model.ToDynamic(doc)
	if session != nil {
		if err := e.store.SaveDocument(ctx, *session, doc); err != nil {
			return nil, err
		}
		e.log.Info("document saved", slog.String("session", session.String()))
	}

	html, err := view.Resume(model.DecodeDynamic(doc))
	if err != nil {
		return nil, err
	}
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, errors.Wrap(err, "render pdf")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, errors.Errorf("invalid PDF output (len=%d)", len(pdf))
	}
	e.log.Info("pdf exported", slog.Int("bytes", len(pdf)))
	return pdf, nil
}
