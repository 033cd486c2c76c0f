package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"subjectstore-backend/internal/config"
)

// InlineBase64Strategy stores the image as a data URI directly in the
// document. No external storage dependency; document size grows with the
// image.
type InlineBase64Strategy struct{}

func NewInlineBase64Strategy() *InlineBase64Strategy {
	return &InlineBase64Strategy{}
}

func (s *InlineBase64Strategy) Name() string {
	return config.StrategyInlineBase64
}

func (s *InlineBase64Strategy) Store(ctx context.Context, file *UploadedFile) (StoredImage, error) {
	mime := detectContentType(file)

	return StoredImage{
		Value:       fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(file.Data)),
		ContentType: mime,
	}, nil
}

// InlineBinaryStrategy stores the raw bytes plus the MIME type in the
// document. Rendering back to a client re-encodes to a data URI at read time.
type InlineBinaryStrategy struct{}

func NewInlineBinaryStrategy() *InlineBinaryStrategy {
	return &InlineBinaryStrategy{}
}

func (s *InlineBinaryStrategy) Name() string {
	return config.StrategyInlineBinary
}

func (s *InlineBinaryStrategy) Store(ctx context.Context, file *UploadedFile) (StoredImage, error) {
	return StoredImage{
		Data:        file.Data,
		ContentType: detectContentType(file),
	}, nil
}

// detectContentType trusts the client-declared MIME type when present and
// sniffs the bytes otherwise.
func detectContentType(file *UploadedFile) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	return http.DetectContentType(file.Data)
}
