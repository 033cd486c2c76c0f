package storage

import (
	"context"
	"fmt"

	"subjectstore-backend/internal/config"
)

// UploadedFile is what the HTTP layer hands over: the received file's bytes,
// original name, and MIME type. How it got here (multipart parsing) is not
// this package's concern.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredImage is the storable representation of an uploaded image.
// Which fields are populated depends on the active strategy:
//
//	inline_base64: Value = data URI, ContentType set, Data empty
//	inline_binary: Data + ContentType set, Value empty
//	disk:          Value = "/uploads/<name>", ContentType set, Data empty
//	minio:         Value = object URL, ContentType set, Data empty
type StoredImage struct {
	Value       string
	Data        []byte
	ContentType string
}

// Strategy converts an uploaded file into its storable representation.
// Strategies are mutually exclusive; one is selected per deployment.
type Strategy interface {
	Name() string
	Store(ctx context.Context, file *UploadedFile) (StoredImage, error)
}

// NewStrategy builds the strategy selected by configuration.
func NewStrategy(cfg *config.Config) (Strategy, error) {
	switch cfg.Storage.Strategy {
	case config.StrategyInlineBase64:
		return NewInlineBase64Strategy(), nil
	case config.StrategyInlineBinary:
		return NewInlineBinaryStrategy(), nil
	case config.StrategyDisk:
		return NewDiskStrategy(cfg.Storage.UploadDir)
	case config.StrategyMinIO:
		return NewMinIOStrategy(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage strategy %q", cfg.Storage.Strategy)
	}
}
