package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"subjectstore-backend/internal/domains/subject/model"
	"subjectstore-backend/internal/infrastructure/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory RepositoryInterface with the same merge and
// ordering semantics as the Postgres implementation.
type fakeRepo struct {
	order    []uuid.UUID
	subjects map[uuid.UUID]model.Subject
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subjects: make(map[uuid.UUID]model.Subject)}
}

func (r *fakeRepo) Insert(ctx context.Context, subject *model.Subject) error {
	r.subjects[subject.ID] = *subject
	r.order = append(r.order, subject.ID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, limit, offset int) ([]model.Subject, int, error) {
	total := len(r.order)
	if offset >= total {
		return nil, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]model.Subject, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, r.subjects[id])
	}
	return out, total, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, model.ErrSubjectNotFound
	}
	return &s, nil
}

func (r *fakeRepo) Update(ctx context.Context, id uuid.UUID, patch *model.SubjectPatch) (*model.Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, model.ErrSubjectNotFound
	}

	if patch.Course != nil {
		s.Course = *patch.Course
	}
	if patch.Bookname != nil {
		s.Bookname = *patch.Bookname
	}
	if patch.Author != nil {
		s.Author = *patch.Author
	}
	if patch.Edition != nil {
		s.Edition = *patch.Edition
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.ReplaceImage {
		s.Image = patch.NewImage.Value
		s.ImageData = patch.NewImage.Data
		s.ContentType = patch.NewImage.ContentType
	}

	r.subjects[id] = s
	return &s, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.subjects[id]; !ok {
		return model.ErrSubjectNotFound
	}
	delete(r.subjects, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestService(repo *fakeRepo) ServiceInterface {
	return NewSubjectService(repo, storage.NewInlineBase64Strategy(), storage.NewValidator(5*1024*1024))
}

func validCreateRequest() model.CreateSubjectRequest {
	return model.CreateSubjectRequest{
		Course:      "CS101",
		Bookname:    "Introduction to Algorithms",
		Author:      "Cormen",
		Edition:     "3rd",
		Price:       "49.99",
		Description: "Lightly used, no markings",
	}
}

// pngBytes returns a valid 1x1 PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success without image", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		created, err := svc.Create(ctx, validCreateRequest(), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "CS101", created.Course)
		assert.Equal(t, "49.99", created.Price.StringFixed(2))
		assert.Empty(t, created.Image)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("missing required field returns validation error and stores nothing", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		req := validCreateRequest()
		req.Author = ""

		_, err := svc.Create(ctx, req, nil)
		require.Error(t, err)

		var vErrs validation.Errors
		assert.ErrorAs(t, err, &vErrs)
		assert.Contains(t, vErrs, "Author")
		assert.Empty(t, repo.subjects)
	})

	t.Run("non-numeric price", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		req := validCreateRequest()
		req.Price = "cheap"

		_, err := svc.Create(ctx, req, nil)
		assert.ErrorIs(t, err, model.ErrInvalidPrice)
	})

	t.Run("image round trip is byte identical", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		original := pngBytes(t)
		created, err := svc.Create(ctx, validCreateRequest(), &storage.UploadedFile{
			Filename:    "cover.png",
			ContentType: "image/png",
			Data:        original,
		})
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(created.Image, "data:image/png;base64,"))
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(created.Image, "data:image/png;base64,"))
		require.NoError(t, err)
		assert.Equal(t, original, decoded)

		fetched, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Image, fetched.Image)
	})

	t.Run("non-image upload rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.Create(ctx, validCreateRequest(), &storage.UploadedFile{
			Filename: "notes.txt",
			Data:     []byte("not an image"),
		})
		assert.ErrorIs(t, err, storage.ErrInvalidImageFormat)
	})

	t.Run("oversized upload rejected", func(t *testing.T) {
		svc := NewSubjectService(newFakeRepo(), storage.NewInlineBase64Strategy(), storage.NewValidator(10))

		_, err := svc.Create(ctx, validCreateRequest(), &storage.UploadedFile{
			Filename: "cover.png",
			Data:     pngBytes(t),
		})
		assert.ErrorIs(t, err, storage.ErrImageTooLarge)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, validCreateRequest(), nil)
		require.NoError(t, err)
	}

	t.Run("limit 2 over 5 documents gives 3 pages", func(t *testing.T) {
		resp, err := svc.List(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, resp.TotalSubjects)
		assert.Equal(t, 3, resp.TotalPages)
		assert.Equal(t, 1, resp.CurrentPage)
		assert.Len(t, resp.Subjects, 2)
	})

	t.Run("last page is partial", func(t *testing.T) {
		resp, err := svc.List(ctx, 3, 2)
		require.NoError(t, err)
		assert.Len(t, resp.Subjects, 1)
	})

	t.Run("page past the end is silently empty", func(t *testing.T) {
		resp, err := svc.List(ctx, 10, 2)
		require.NoError(t, err)
		assert.Empty(t, resp.Subjects)
		assert.Equal(t, 5, resp.TotalSubjects)
		assert.Equal(t, 10, resp.CurrentPage)
	})

	t.Run("defaults applied for zero page and limit", func(t *testing.T) {
		resp, err := svc.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.CurrentPage)
		assert.Len(t, resp.Subjects, 5)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(ctx, validCreateRequest(), nil)
	require.NoError(t, err)

	t.Run("price-only patch leaves other fields unchanged", func(t *testing.T) {
		price := "99.50"
		updated, err := svc.Update(ctx, created.ID, model.UpdateSubjectRequest{Price: &price}, nil)
		require.NoError(t, err)

		assert.Equal(t, "99.50", updated.Price.StringFixed(2))
		assert.Equal(t, created.Course, updated.Course)
		assert.Equal(t, created.Bookname, updated.Bookname)
		assert.Equal(t, created.Author, updated.Author)
		assert.Equal(t, created.Edition, updated.Edition)
		assert.Equal(t, created.Description, updated.Description)
	})

	t.Run("new file replaces image", func(t *testing.T) {
		img := pngBytes(t)
		updated, err := svc.Update(ctx, created.ID, model.UpdateSubjectRequest{}, &storage.UploadedFile{
			Filename:    "new.png",
			ContentType: "image/png",
			Data:        img,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(updated.Image, "data:image/png;base64,"))
	})

	t.Run("omitted file leaves image untouched", func(t *testing.T) {
		course := "CS201"
		updated, err := svc.Update(ctx, created.ID, model.UpdateSubjectRequest{Course: &course}, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(updated.Image, "data:image/png;base64,"))
		assert.Equal(t, "CS201", updated.Course)
	})

	t.Run("invalid price", func(t *testing.T) {
		price := "free"
		_, err := svc.Update(ctx, created.ID, model.UpdateSubjectRequest{Price: &price}, nil)
		assert.ErrorIs(t, err, model.ErrInvalidPrice)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.NewString(), model.UpdateSubjectRequest{}, nil)
		assert.ErrorIs(t, err, model.ErrSubjectNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	created, err := svc.Create(ctx, validCreateRequest(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	t.Run("get after delete", func(t *testing.T) {
		_, err := svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, model.ErrSubjectNotFound)
	})

	t.Run("repeated delete stays not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, created.ID), model.ErrSubjectNotFound)
	})

	t.Run("malformed id maps to not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, "not-a-uuid"), model.ErrSubjectNotFound)
	})
}
