package service

import (
	"context"

	"subjectstore-backend/internal/domains/subject/model"
	"subjectstore-backend/internal/infrastructure/storage"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateSubjectRequest, file *storage.UploadedFile) (*model.SubjectResponse, error)
	List(ctx context.Context, page, limit int) (*model.ListSubjectsResponse, error)
	GetByID(ctx context.Context, id string) (*model.SubjectResponse, error)
	Update(ctx context.Context, id string, req model.UpdateSubjectRequest, file *storage.UploadedFile) (*model.SubjectResponse, error)
	Delete(ctx context.Context, id string) error
}
