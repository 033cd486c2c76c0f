package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs (multipart form fields)
// ========================================

// CreateSubjectRequest carries the six required text fields of a new subject.
// The optional image file travels separately as the multipart "image" field.
type CreateSubjectRequest struct {
	Course      string `form:"course"`
	Bookname    string `form:"bookname"`
	Author      string `form:"author"`
	Edition     string `form:"edition"`
	Price       string `form:"price"`
	Description string `form:"description"`
}

func (r CreateSubjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Course,
			validation.Required.Error("course is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Bookname,
			validation.Required.Error("bookname is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Edition,
			validation.Required.Error("edition is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 2000),
		),
	)
}

// UpdateSubjectRequest carries a partial update: only supplied fields change.
// Pointers distinguish "absent" from "sent but empty".
type UpdateSubjectRequest struct {
	Course      *string
	Bookname    *string
	Author      *string
	Edition     *string
	Price       *string
	Description *string
}

func (r UpdateSubjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Course, validation.NilOrNotEmpty.Error("course cannot be empty")),
		validation.Field(&r.Bookname, validation.NilOrNotEmpty.Error("bookname cannot be empty")),
		validation.Field(&r.Author, validation.NilOrNotEmpty.Error("author cannot be empty")),
		validation.Field(&r.Edition, validation.NilOrNotEmpty.Error("edition cannot be empty")),
		validation.Field(&r.Price, validation.NilOrNotEmpty.Error("price cannot be empty")),
		validation.Field(&r.Description, validation.NilOrNotEmpty.Error("description cannot be empty")),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type SubjectResponse struct {
	ID          string          `json:"id"`
	Course      string          `json:"course"`
	Bookname    string          `json:"bookname"`
	Author      string          `json:"author"`
	Edition     string          `json:"edition"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewSubjectResponse(s *Subject) *SubjectResponse {
	return &SubjectResponse{
		ID:          s.ID.String(),
		Course:      s.Course,
		Bookname:    s.Bookname,
		Author:      s.Author,
		Edition:     s.Edition,
		Price:       s.Price,
		Description: s.Description,
		Image:       s.RenderedImage(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ListSubjectsResponse is the paginated envelope.
// TotalPages = ceil(TotalSubjects / limit); a page past the end yields an
// empty Subjects slice, not an error.
type ListSubjectsResponse struct {
	TotalSubjects int               `json:"totalSubjects"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	Subjects      []SubjectResponse `json:"subjects"`
}

// SubjectCacheKey is the cache key for a single subject document.
func SubjectCacheKey(id string) string {
	return "subject:detail:" + id
}
