package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/AmrMohamed17/smart-cv-builder/internal/domain"
	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/ai"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/textextract"
	"github.com/pkg/errors"
)

// UploadFile is one file from the upload form.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UploadRequest is a submitted upload form. Resume is required.
type UploadRequest struct {
	Resume          *UploadFile
	LinkedIn        *UploadFile
	GitHubUsername  string
	JobTitle        string
	ExperienceLevel string
}

// Processor runs an upload through extraction, GitHub digest, generation
// and persistence. Every step runs in the calling goroutine.
type Processor struct {
	store     UploadStore
	extractor TextExtractor
	github    DigestFetcher
	generator ResumeGenerator
	log       *slog.Logger

	githubAuth bool
}

func NewProcessor(store UploadStore, extractor TextExtractor, github DigestFetcher, generator ResumeGenerator, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{store: store, extractor: extractor, github: github, generator: generator, log: log}
}

// WithGitHubAuth makes GitHub lookups use the configured token.
func (p *Processor) WithGitHubAuth(authenticated bool) *Processor {
	p.githubAuth = authenticated
	return p
}

// Validate checks the request before anything is stored.
func (p *Processor) Validate(req UploadRequest) error {
	if req.Resume == nil || req.Resume.Content == nil {
		return apperr.NewValidationError("cv", "resume file is required")
	}
	if !textextract.Supported(req.Resume.Name) {
		return apperr.NewValidationError("cv", "resume must be a PDF, DOCX or TXT file")
	}
	if req.LinkedIn != nil && !textextract.Supported(req.LinkedIn.Name) {
		return apperr.NewValidationError("linkedin", "LinkedIn file must be a PDF, DOCX or TXT file")
	}
	return nil
}

// Process handles one upload. The returned record carries the session id
// and the last stage reached, also when err is non-nil after validation.
func (p *Processor) Process(ctx context.Context, req UploadRequest) (*domain.ResumeUpload, error) {
	if err := p.Validate(req); err != nil {
		return nil, err
	}
	req.GitHubUsername = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(req.GitHubUsername), "@"))

	u := domain.NewResumeUpload(req.JobTitle, req.ExperienceLevel, req.GitHubUsername)
	log := p.log.With(slog.String("session", u.ID.String()))
	p.record(ctx, log, u)

	if err := p.run(ctx, log, u, req); err != nil {
		u.Fail(err)
		p.record(ctx, log, u)
		log.Error("upload failed", slog.String("failed_at", string(u.FailedAt)), slog.Any("err", err))
		return u, err
	}
	u.Advance(domain.StageDone)
	p.record(ctx, log, u)
	log.Info("upload processed")
	return u, nil
}

func (p *Processor) run(ctx context.Context, log *slog.Logger, u *domain.ResumeUpload, req UploadRequest) error {
	resumePath, err := p.store.SaveFile(ctx, u.ID, "resume"+strings.ToLower(filepath.Ext(req.Resume.Name)), req.Resume.Content)
	if err != nil {
		return err
	}
	u.ResumeFile = filepath.Base(resumePath)
	linkedinPath := ""
	if req.LinkedIn != nil {
		if linkedinPath, err = p.store.SaveFile(ctx, u.ID, "linkedin"+strings.ToLower(filepath.Ext(req.LinkedIn.Name)), req.LinkedIn.Content); err != nil {
			return err
		}
		u.LinkedInFile = filepath.Base(linkedinPath)
	}
	p.advance(log, u, domain.StageFilesSaved)

	resumeText, err := p.extractor.Extract(resumePath)
	if err != nil {
		return errors.Wrap(err, "extract resume text")
	}
	linkedinText := ai.NoLinkedIn
	if linkedinPath != "" {
		if linkedinText, err = p.extractor.Extract(linkedinPath); err != nil {
			return errors.Wrap(err, "extract LinkedIn text")
		}
	}
	p.advance(log, u, domain.StageTextExtracted, slog.Int("resume_chars", len(resumeText)))

	digest := ai.NoGitHub
	if req.GitHubUsername != "" {
		if digest, err = p.github.FetchDigest(ctx, req.GitHubUsername, p.githubAuth); err != nil {
			return errors.Wrap(err, "fetch GitHub digest")
		}
		p.advance(log, u, domain.StageGitHubFetched, slog.Int("digest_chars", len(digest)))
	}

	raw, err := p.generator.GenerateResume(ctx, ai.PromptInput{
		ResumeText:      resumeText,
		GitHubDigest:    digest,
		LinkedInText:    linkedinText,
		JobTitle:        req.JobTitle,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		return errors.Wrap(err, "generate resume")
	}
	p.advance(log, u, domain.StageLLMCalled)

	doc, err := ParseGenerated(raw)
	if err != nil {
		return err
	}
	p.advance(log, u, domain.StageSanitized)

	if err := p.store.SaveDocument(ctx, u.ID, doc); err != nil {
		return err
	}
	p.advance(log, u, domain.StagePersisted)
	return nil
}

// ParseGenerated sanitises raw model output and decodes it into a document
// that matches the flat resume schema.
func ParseGenerated(raw string) (model.Document, error) {
	clean := ai.Sanitize(raw)
	var doc model.Document
	if err := json.Unmarshal([]byte(clean), &doc); err != nil {
		return nil, &apperr.MalformedResponseError{Raw: raw, Err: err}
	}
	if doc == nil {
		return nil, &apperr.MalformedResponseError{Raw: raw, Err: errors.New("response is not a JSON object")}
	}
	if err := model.ValidateGenerated(doc); err != nil {
		return nil, &apperr.MalformedResponseError{Raw: raw, Err: err}
	}
	return doc, nil
}

func (p *Processor) advance(log *slog.Logger, u *domain.ResumeUpload, s domain.Stage, attrs ...any) {
	u.Advance(s)
	log.Info("upload stage", append([]any{slog.String("stage", string(s))}, attrs...)...)
}

func (p *Processor) record(ctx context.Context, log *slog.Logger, u *domain.ResumeUpload) {
	if err := p.store.Save(ctx, u); err != nil {
		log.Warn("failed to save upload record", slog.Any("err", err))
	}
}
