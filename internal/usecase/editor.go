package usecase

import (
	"context"

	"github.com/AmrMohamed17/smart-cv-builder/internal/model"
	"github.com/google/uuid"
)

// Editor loads a session's document for the edit form.
type Editor struct {
	store DocumentStore
}

func NewEditor(store DocumentStore) *Editor {
	return &Editor{store: store}
}

// Load returns the stored document in section-list form. A session with no
// readable document yields an empty resume.
func (e *Editor) Load(ctx context.Context, id uuid.UUID) (model.Dynamic, error) {
	doc, err := e.store.LoadDocument(ctx, id)
	if err != nil {
		return model.Dynamic{}, err
	}
	return model.DecodeDynamic(model.ToDynamic(doc)), nil
}
