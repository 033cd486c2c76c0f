package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"subjectstore-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestInlineBase64Strategy(t *testing.T) {
	s := NewInlineBase64Strategy()
	assert.Equal(t, config.StrategyInlineBase64, s.Name())

	original := pngFixture(t)
	stored, err := s.Store(context.Background(), &UploadedFile{
		Filename:    "cover.png",
		ContentType: "image/png",
		Data:        original,
	})
	require.NoError(t, err)

	assert.Empty(t, stored.Data, "base64 strategy keeps nothing outside the value")
	require.True(t, strings.HasPrefix(stored.Value, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored.Value, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, original, decoded, "round trip must be byte identical")
}

func TestInlineBinaryStrategy(t *testing.T) {
	s := NewInlineBinaryStrategy()
	assert.Equal(t, config.StrategyInlineBinary, s.Name())

	original := pngFixture(t)
	stored, err := s.Store(context.Background(), &UploadedFile{
		Filename:    "cover.png",
		ContentType: "image/png",
		Data:        original,
	})
	require.NoError(t, err)

	assert.Empty(t, stored.Value)
	assert.Equal(t, original, stored.Data)
	assert.Equal(t, "image/png", stored.ContentType)
}

func TestDiskStrategy(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStrategy(filepath.Join(dir, "uploads"))
	require.NoError(t, err, "constructor creates the directory")
	assert.Equal(t, config.StrategyDisk, s.Name())

	original := pngFixture(t)
	stored, err := s.Store(context.Background(), &UploadedFile{
		Filename:    "cover.png",
		ContentType: "image/png",
		Data:        original,
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(stored.Value, PublicUploadPath+"/"))
	name := strings.TrimPrefix(stored.Value, PublicUploadPath+"/")
	assert.Regexp(t, regexp.MustCompile(`^\d+-cover\.png$`), name)

	written, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, original, written)
}

func TestUniqueFilenameStripsDirectories(t *testing.T) {
	assert.Regexp(t, `^\d+-passwd$`, uniqueFilename("../../etc/passwd"))
	assert.Regexp(t, `^\d+-upload$`, uniqueFilename("."))
}

func TestDetectContentType(t *testing.T) {
	t.Run("client-declared type wins", func(t *testing.T) {
		got := detectContentType(&UploadedFile{ContentType: "image/gif", Data: pngFixture(t)})
		assert.Equal(t, "image/gif", got)
	})

	t.Run("sniffed when absent", func(t *testing.T) {
		got := detectContentType(&UploadedFile{Data: pngFixture(t)})
		assert.Equal(t, "image/png", got)
	})
}

func TestValidator(t *testing.T) {
	v := NewValidator(1024 * 1024)

	t.Run("accepts png", func(t *testing.T) {
		assert.NoError(t, v.Validate(&UploadedFile{Data: pngFixture(t)}))
	})

	t.Run("accepts jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
		assert.NoError(t, v.Validate(&UploadedFile{Data: buf.Bytes()}))
	})

	t.Run("accepts gif", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, gif.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
		assert.NoError(t, v.Validate(&UploadedFile{Data: buf.Bytes()}))
	})

	t.Run("rejects non-image bytes", func(t *testing.T) {
		err := v.Validate(&UploadedFile{Data: []byte("plain text, not pixels")})
		assert.ErrorIs(t, err, ErrInvalidImageFormat)
	})

	t.Run("rejects oversized upload before decoding", func(t *testing.T) {
		small := NewValidator(4)
		err := small.Validate(&UploadedFile{Data: pngFixture(t)})
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestNewStrategySelection(t *testing.T) {
	cases := []struct {
		strategy string
		name     string
	}{
		{config.StrategyInlineBase64, config.StrategyInlineBase64},
		{config.StrategyInlineBinary, config.StrategyInlineBinary},
		{config.StrategyDisk, config.StrategyDisk},
	}

	for _, tc := range cases {
		t.Run(tc.strategy, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Strategy = tc.strategy
			cfg.Storage.UploadDir = t.TempDir()

			s, err := NewStrategy(cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.name, s.Name())
		})
	}

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Strategy = "carrier-pigeon"

		_, err := NewStrategy(cfg)
		assert.Error(t, err)
	})
}
