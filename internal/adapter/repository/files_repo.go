package repository

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AmrMohamed17/smart-cv-builder/internal/domain"
	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	documentFile = "parsed.json"
	uploadFile   = "upload.json"
)

// ErrNotFound is returned for a session without stored state.
var ErrNotFound = errors.New("session not found")

// FilesRepo keeps each session's files under its own directory:
// <root>/<session id>/{resume.*, linkedin.*, parsed.json, upload.json}.
type FilesRepo struct {
	root string
	log  *slog.Logger
}

func NewFilesRepo(root string, log *slog.Logger) *FilesRepo {
	if log == nil {
		log = slog.Default()
	}
	return &FilesRepo{root: root, log: log}
}

func (r *FilesRepo) dir(id uuid.UUID) string {
	return filepath.Join(r.root, id.String())
}

// SaveFile stores an uploaded file as name inside the session directory and
// returns its path. An existing file of that name is replaced.
func (r *FilesRepo) SaveFile(ctx context.Context, id uuid.UUID, name string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(r.dir(id), filepath.Base(name))
	if err := writeAtomic(path, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	}); err != nil {
		return "", errors.Wrapf(err, "save %s", name)
	}
	return path, nil
}

// SaveDocument overwrites the session's resume document.
func (r *FilesRepo) SaveDocument(ctx context.Context, id uuid.UUID, doc model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrap(writeJSON(filepath.Join(r.dir(id), documentFile), doc), "save document")
}

// LoadDocument reads the session's resume document. A missing or unreadable
// document loads as empty.
func (r *FilesRepo) LoadDocument(ctx context.Context, id uuid.UUID) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(r.dir(id), documentFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn("read document", slog.String("session", id.String()), slog.Any("err", err))
		}
		return model.Document{}, nil
	}
	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil || doc == nil {
		r.log.Warn("invalid document json", slog.String("session", id.String()), slog.Any("err", err))
		return model.Document{}, nil
	}
	return doc, nil
}

// Save writes the upload record.
func (r *FilesRepo) Save(ctx context.Context, u *domain.ResumeUpload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrap(writeJSON(filepath.Join(r.dir(u.ID), uploadFile), u), "save upload")
}

// LoadUpload reads the upload record of a session.
func (r *FilesRepo) LoadUpload(ctx context.Context, id uuid.UUID) (*domain.ResumeUpload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(r.dir(id), uploadFile))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	var u domain.ResumeUpload
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, errors.Wrap(err, "decode upload")
	}
	return &u, nil
}

func writeJSON(path string, v any) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// writeAtomic writes to a temp file in the target directory and renames it
// over path, so readers never see a partial file.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
