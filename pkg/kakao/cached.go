package kakao

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/voin/voin-backend/pkg/cache"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

// CachedProfiles 토큰 해시 기준으로 프로필 조회 결과를 캐시한다.
// 회원가입 단계마다 같은 토큰으로 프로필을 다시 조회하기 때문.
type CachedProfiles struct {
	next  ProfileFetcher
	cache cache.Service
}

// NewCachedProfiles wraps next with the profile cache
func NewCachedProfiles(next ProfileFetcher, c cache.Service) *CachedProfiles {
	return &CachedProfiles{next: next, cache: c}
}

func (p *CachedProfiles) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	if p.cache == nil || !p.cache.IsAvailable() {
		return p.next.GetProfile(ctx, accessToken)
	}
	key := tokenHash(accessToken)

	var cached Profile
	if err := p.cache.GetKakaoProfile(ctx, key, &cached); err == nil && cached.ID != "" {
		return &cached, nil
	}

	profile, err := p.next.GetProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SetKakaoProfile(ctx, key, profile); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("kakao profile cache set failed")
	}
	return profile, nil
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
