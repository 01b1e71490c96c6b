package usecase

import (
	"context"
	"io"

	"github.com/AmrMohamed17/smart-cv-builder/internal/domain"
	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/ai"
	"github.com/google/uuid"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type TextExtractor interface {
	Extract(path string) (string, error)
}

type DigestFetcher interface {
	FetchDigest(ctx context.Context, username string, authenticated bool) (string, error)
}

type ResumeGenerator interface {
	GenerateResume(ctx context.Context, in ai.PromptInput) (string, error)
}

type DocumentStore interface {
	LoadDocument(ctx context.Context, id uuid.UUID) (model.Document, error)
	SaveDocument(ctx context.Context, id uuid.UUID, doc model.Document) error
}

// UploadStore is the session storage used by the processor.
type UploadStore interface {
	DocumentStore
	SaveFile(ctx context.Context, id uuid.UUID, name string, src io.Reader) (string, error)
	Save(ctx context.Context, u *domain.ResumeUpload) error
}
