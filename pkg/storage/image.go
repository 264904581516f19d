package storage

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxImageSize 프로필 이미지 최대 크기 (5MB)
const DefaultMaxImageSize int64 = 5 * 1024 * 1024

var allowedImageExtensions = []string{"jpg", "jpeg", "png", "gif"}

var (
	ErrInvalidImageData  = errors.New("invalid image data")
	ErrImageTooLarge     = errors.New("image too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// DecodedImage base64 data URL 을 풀어낸 결과
type DecodedImage struct {
	Data      []byte
	Extension string
}

// DecodeDataURL parses "data:image/<type>;base64,<payload>". The extension
// comes from fileName when it has one, otherwise from the MIME subtype.
func DecodeDataURL(dataURL, fileName string) (*DecodedImage, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, ErrInvalidImageData
	}
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || payload == "" || !strings.HasSuffix(header, ";base64") {
		return nil, ErrInvalidImageData
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImageData
	}

	mimeType := strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64")
	ext := Extension(fileName)
	if ext == "" {
		ext = strings.ToLower(mimeType)
	}
	return &DecodedImage{Data: data, Extension: ext}, nil
}

// Extension returns the lower-cased extension of fileName without the dot
func Extension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// ValidateImage checks the extension whitelist and the size limit
func ValidateImage(ext string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if size > maxSize {
		return ErrImageTooLarge
	}
	if !slices.Contains(allowedImageExtensions, strings.ToLower(ext)) {
		return ErrUnsupportedFormat
	}
	return nil
}

// GenerateFileName returns "<uuid>.<ext>"
func GenerateFileName(ext string) string {
	return uuid.New().String() + "." + strings.ToLower(ext)
}
