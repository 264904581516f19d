package service

import (
	"context"
	"errors"

	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"github.com/voin/voin-backend/pkg/storage"
)

// profileImageResolver 세 가지 이미지 선택 방식 중 하나로 최종 이미지 경로를 정한다
type profileImageResolver struct {
	store   storage.ImageStore
	maxSize int64
}

func newProfileImageResolver(store storage.ImageStore, maxSize int64) *profileImageResolver {
	if maxSize <= 0 {
		maxSize = storage.DefaultMaxImageSize
	}
	return &profileImageResolver{store: store, maxSize: maxSize}
}

// resolve 우선순위: 카카오 이미지, 파일 업로드, URL.
// 아무것도 고르지 않으면 allowEmpty 일 때 빈 값, 아니면 에러.
func (r *profileImageResolver) resolve(ctx context.Context, choice domain.ImageChoice, kakaoImage string, allowEmpty bool) (string, error) {
	switch {
	case choice.UseKakaoProfileImage:
		return kakaoImage, nil

	case choice.UseFileUpload:
		if choice.ImageData == "" {
			return "", common.ErrInvalidImageData
		}
		img, err := storage.DecodeDataURL(choice.ImageData, choice.FileName)
		if err != nil {
			return "", imageError(err)
		}
		if err := storage.ValidateImage(img.Extension, int64(len(img.Data)), r.maxSize); err != nil {
			return "", imageError(err)
		}
		path, err := r.store.Save(ctx, img.Data, img.Extension)
		if err != nil {
			return "", imageError(err)
		}
		return path, nil

	case choice.ProfileImageURL != "":
		if err := common.ValidateImageURL(choice.ProfileImageURL); err != nil {
			return "", common.ErrInvalidImageURL
		}
		return choice.ProfileImageURL, nil
	}

	if allowEmpty {
		return "", nil
	}
	return "", common.ErrImageChoiceMissing
}

// imageError maps storage errors to the categorized errors
func imageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrInvalidImageData):
		return common.ErrInvalidImageData
	case errors.Is(err, storage.ErrImageTooLarge):
		return common.ErrImageTooLarge
	case errors.Is(err, storage.ErrUnsupportedFormat):
		return common.ErrUnsupportedImage
	}
	pkglogger.GetLogger().Error().Err(err).Msg("image store failed")
	return common.ErrStorageFailure.Wrap(err)
}
