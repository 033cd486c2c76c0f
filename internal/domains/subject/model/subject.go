package model

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"subjectstore-backend/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subject is the sole persisted entity: a textbook/course record.
//
// Identity is the store-assigned UUID, immutable after creation. The image
// columns are strategy-dependent: Image holds a data URI, an /uploads path or
// an object URL; ImageData holds raw bytes for the inline-binary strategy.
// An absent upload leaves all three image fields empty.
type Subject struct {
	ID          uuid.UUID
	Course      string
	Bookname    string
	Author      string
	Edition     string
	Price       decimal.Decimal
	Description string
	Image       string
	ImageData   []byte
	ContentType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSubject builds a subject with a fresh identity and creation timestamp.
// Field presence is enforced earlier by CreateSubjectRequest.Validate.
func NewSubject(course, bookname, author, edition string, price decimal.Decimal, description string, image storage.StoredImage) *Subject {
	now := time.Now()
	return &Subject{
		ID:          uuid.New(),
		Course:      strings.TrimSpace(course),
		Bookname:    strings.TrimSpace(bookname),
		Author:      strings.TrimSpace(author),
		Edition:     strings.TrimSpace(edition),
		Price:       price,
		Description: description,
		Image:       image.Value,
		ImageData:   image.Data,
		ContentType: image.ContentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RenderedImage is what clients see in the image field. Raw stored bytes are
// re-encoded to a data URI with the stored MIME type; every other
// representation is returned as stored.
func (s *Subject) RenderedImage() string {
	if len(s.ImageData) > 0 {
		return fmt.Sprintf("data:%s;base64,%s", s.ContentType, base64.StdEncoding.EncodeToString(s.ImageData))
	}
	return s.Image
}

// SubjectPatch carries a partial update. Nil fields are left unchanged.
// ReplaceImage overwrites all three image columns together so a new upload
// fully supersedes the previous representation, whatever strategy wrote it.
type SubjectPatch struct {
	Course      *string
	Bookname    *string
	Author      *string
	Edition     *string
	Price       *decimal.Decimal
	Description *string

	ReplaceImage bool
	NewImage     storage.StoredImage
}
