package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"subjectstore-backend/internal/domains/subject/model"
	"subjectstore-backend/internal/domains/subject/service"
	"subjectstore-backend/internal/infrastructure/storage"
	"subjectstore-backend/internal/shared/response"
	"subjectstore-backend/internal/shared/utils"
	"subjectstore-backend/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// imageFormField is the multipart field carrying the optional upload.
const imageFormField = "image"

const detailCacheTTL = 10 * time.Minute

type Handler struct {
	service service.ServiceInterface
	cache   cache.Cache
}

func NewHandler(service service.ServiceInterface, cache cache.Cache) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
	}
}

// Create - POST /api/subjects
// Body: multipart form with course, bookname, author, edition, price,
// description and an optional image file.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid form data")
		return
	}

	file, err := h.uploadedFile(c)
	if err != nil {
		response.BadRequest(c, "could not read uploaded file")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req, file)
	if model.HandleSubjectError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, "Subject created successfully", created)
}

// List - GET /api/subjects?page=&limit=
func (h *Handler) List(c *gin.Context) {
	page := service.DefaultPage
	limit := service.DefaultLimit

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	data, err := h.service.List(c.Request.Context(), page, limit)
	if model.HandleSubjectError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, "Subjects fetched successfully", data)
}

// GetByID - GET /api/subjects/:id
// Read-through cached; the inline-binary representation is rendered as a
// data URI by the service before it ever reaches the cache.
func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid subject id")
		return
	}

	cacheKey := model.SubjectCacheKey(id)
	var cached model.SubjectResponse
	found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached)
	if found {
		response.Success(c, http.StatusOK, "Subject fetched successfully", &cached)
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Cache read failed")
	}

	subject, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleSubjectError(c, err) {
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, subject, detailCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Cache write failed")
	}

	response.Success(c, http.StatusOK, "Subject fetched successfully", subject)
}

// Update - PUT /api/subjects/:id
// Accepts any subset of the form fields plus an optional replacement image.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid subject id")
		return
	}

	req := model.UpdateSubjectRequest{
		Course:      formValue(c, "course"),
		Bookname:    formValue(c, "bookname"),
		Author:      formValue(c, "author"),
		Edition:     formValue(c, "edition"),
		Price:       formValue(c, "price"),
		Description: formValue(c, "description"),
	}

	file, err := h.uploadedFile(c)
	if err != nil {
		response.BadRequest(c, "could not read uploaded file")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req, file)
	if model.HandleSubjectError(c, err) {
		return
	}

	h.invalidate(c, id)

	response.Success(c, http.StatusOK, "Subject updated successfully", updated)
}

// Delete - DELETE /api/subjects/:id
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid subject id")
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if model.HandleSubjectError(c, err) {
		return
	}

	h.invalidate(c, id)

	response.Success(c, http.StatusOK, "Subject deleted successfully", gin.H{"id": id})
}

// uploadedFile reads the optional multipart image field. A missing file is
// not an error; it returns (nil, nil).
func (h *Handler) uploadedFile(c *gin.Context) (*storage.UploadedFile, error) {
	header, err := c.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &storage.UploadedFile{
		Filename:    header.Filename,
		ContentType: contentTypeOf(header),
		Data:        data,
	}, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}

func (h *Handler) invalidate(c *gin.Context, id string) {
	if err := h.cache.Delete(c.Request.Context(), model.SubjectCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Cache invalidation failed")
	}
}

// formValue distinguishes an absent form field from one sent empty; partial
// updates must only touch fields the client actually supplied.
func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}
