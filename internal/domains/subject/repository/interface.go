package repository

import (
	"context"

	"subjectstore-backend/internal/domains/subject/model"

	"github.com/google/uuid"
)

// RepositoryInterface is the keyed collection of subject documents.
type RepositoryInterface interface {
	// Insert persists a new subject under its pre-assigned id.
	Insert(ctx context.Context, subject *model.Subject) error

	// List returns one page of subjects in insertion order plus the total
	// count. An offset past the end yields an empty slice, not an error.
	List(ctx context.Context, limit, offset int) ([]model.Subject, int, error)

	// GetByID returns the subject or model.ErrSubjectNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)

	// Update merges the patch over the stored document and returns the
	// updated row, or model.ErrSubjectNotFound.
	Update(ctx context.Context, id uuid.UUID, patch *model.SubjectPatch) (*model.Subject, error)

	// Delete removes the subject or returns model.ErrSubjectNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
