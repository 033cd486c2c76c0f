package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var (
	ErrImageTooLarge      = errors.New("image exceeds maximum upload size")
	ErrInvalidImageFormat = errors.New("file is not a supported image format")
)

// Validator checks an upload against size and format limits before any
// strategy persists it. The bytes themselves are never modified; the stored
// image must reproduce the upload exactly.
type Validator struct {
	MaxSize int64 // bytes
}

func NewValidator(maxSize int64) *Validator {
	return &Validator{MaxSize: maxSize}
}

func (v *Validator) Validate(file *UploadedFile) error {
	if int64(len(file.Data)) > v.MaxSize {
		return fmt.Errorf("%w (%d bytes, limit %d)", ErrImageTooLarge, len(file.Data), v.MaxSize)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageFormat, err)
	}

	switch format {
	case "jpeg", "png", "gif":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidImageFormat, format)
	}
}
