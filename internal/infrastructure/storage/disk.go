package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"subjectstore-backend/internal/config"
)

// PublicUploadPath is the URL prefix under which the upload directory is
// served as static content.
const PublicUploadPath = "/uploads"

// DiskStrategy writes uploads to a local directory and stores only the
// relative path in the document. Filenames get a millisecond-timestamp prefix
// so concurrent uploads of the same original name (almost) never collide.
type DiskStrategy struct {
	dir string
}

func NewDiskStrategy(dir string) (*DiskStrategy, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}

	return &DiskStrategy{dir: dir}, nil
}

func (s *DiskStrategy) Name() string {
	return config.StrategyDisk
}

func (s *DiskStrategy) Dir() string {
	return s.dir
}

func (s *DiskStrategy) Store(ctx context.Context, file *UploadedFile) (StoredImage, error) {
	name := uniqueFilename(file.Filename)

	if err := os.WriteFile(filepath.Join(s.dir, name), file.Data, 0o644); err != nil {
		return StoredImage{}, fmt.Errorf("failed to write upload %s: %w", name, err)
	}

	return StoredImage{
		Value:       PublicUploadPath + "/" + name,
		ContentType: detectContentType(file),
	}, nil
}

// uniqueFilename prefixes the original name with the current unix-millisecond
// timestamp. Best effort: two uploads of the same name within the same
// millisecond still collide.
func uniqueFilename(original string) string {
	base := filepath.Base(original)
	if base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}
