package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

// ImageStore 이미지 바이트를 저장하고 조회 가능한 경로를 돌려준다
type ImageStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

// LocalStore 로컬 디렉토리에 저장하고 /images/profiles/<file> 경로를 반환
type LocalStore struct {
	dir          string
	publicPrefix string
	maxSize      int64
}

// NewLocalStore creates the directory if needed
func NewLocalStore(dir, publicPrefix string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("업로드 디렉토리 생성 실패: %w", err)
	}
	return &LocalStore{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		maxSize:      maxSize,
	}, nil
}

// Dir returns the directory served under the public prefix
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save validates and writes the image
func (s *LocalStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	if err := ValidateImage(ext, int64(len(data)), s.maxSize); err != nil {
		return "", err
	}

	fileName := GenerateFileName(ext)
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // public image file
		return "", fmt.Errorf("이미지 파일 저장 실패: %w", err)
	}

	pkglogger.GetLogger().Info().Str("path", path).Int("size", len(data)).Msg("image saved")
	return s.publicPrefix + "/" + fileName, nil
}
