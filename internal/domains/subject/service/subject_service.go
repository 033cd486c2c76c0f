package service

import (
	"context"
	"fmt"

	"subjectstore-backend/internal/domains/subject/model"
	"subjectstore-backend/internal/domains/subject/repository"
	"subjectstore-backend/internal/infrastructure/storage"
	"subjectstore-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// subjectService composes image intake and the record store. Each operation
// is a single-document affair: no transactions, no cross-record effects,
// last-write-wins on concurrent updates.
type subjectService struct {
	repo      repository.RepositoryInterface
	images    storage.Strategy
	validator *storage.Validator
}

func NewSubjectService(repo repository.RepositoryInterface, images storage.Strategy, validator *storage.Validator) ServiceInterface {
	return &subjectService{
		repo:      repo,
		images:    images,
		validator: validator,
	}
}

func (s *subjectService) Create(ctx context.Context, req model.CreateSubjectRequest, file *storage.UploadedFile) (*model.SubjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidPrice, req.Price)
	}

	image, err := s.storeImage(ctx, file)
	if err != nil {
		return nil, err
	}

	subject := model.NewSubject(req.Course, req.Bookname, req.Author, req.Edition, price, req.Description, image)

	if err := s.repo.Insert(ctx, subject); err != nil {
		return nil, err
	}

	return model.NewSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context, page, limit int) (*model.ListSubjectsResponse, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := (page - 1) * limit

	subjects, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]model.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		items = append(items, *model.NewSubjectResponse(&subjects[i]))
	}

	return &model.ListSubjectsResponse{
		TotalSubjects: total,
		TotalPages:    (total + limit - 1) / limit,
		CurrentPage:   page,
		Subjects:      items,
	}, nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*model.SubjectResponse, error) {
	uid := utils.ParseStringToUUID(id)
	if uid == uuid.Nil {
		return nil, model.ErrSubjectNotFound
	}

	subject, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return model.NewSubjectResponse(subject), nil
}

func (s *subjectService) Update(ctx context.Context, id string, req model.UpdateSubjectRequest, file *storage.UploadedFile) (*model.SubjectResponse, error) {
	uid := utils.ParseStringToUUID(id)
	if uid == uuid.Nil {
		return nil, model.ErrSubjectNotFound
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	patch := &model.SubjectPatch{
		Course:      req.Course,
		Bookname:    req.Bookname,
		Author:      req.Author,
		Edition:     req.Edition,
		Description: req.Description,
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidPrice, *req.Price)
		}
		patch.Price = &price
	}

	// A new file replaces the image; an omitted file leaves it untouched.
	if hasUpload(file) {
		image, err := s.storeImage(ctx, file)
		if err != nil {
			return nil, err
		}
		patch.ReplaceImage = true
		patch.NewImage = image
	}

	subject, err := s.repo.Update(ctx, uid, patch)
	if err != nil {
		return nil, err
	}

	return model.NewSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, id string) error {
	uid := utils.ParseStringToUUID(id)
	if uid == uuid.Nil {
		return model.ErrSubjectNotFound
	}

	return s.repo.Delete(ctx, uid)
}

// storeImage runs the configured intake strategy. No file is not an error;
// the subject simply has an empty image.
func (s *subjectService) storeImage(ctx context.Context, file *storage.UploadedFile) (storage.StoredImage, error) {
	if !hasUpload(file) {
		return storage.StoredImage{}, nil
	}

	if err := s.validator.Validate(file); err != nil {
		return storage.StoredImage{}, err
	}

	return s.images.Store(ctx, file)
}

func hasUpload(file *storage.UploadedFile) bool {
	return file != nil && len(file.Data) > 0
}
