package service

import (
	"context"
	"errors"

	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	"github.com/voin/voin-backend/pkg/jwt"
	"github.com/voin/voin-backend/pkg/kakao"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"gorm.io/gorm"
)

// KakaoOAuth 인가 코드 흐름
type KakaoOAuth interface {
	AuthURL(state string, forceConsent bool) string
	ExchangeCode(ctx context.Context, code string) (*kakao.Token, error)
}

// AuthService 카카오 로그인과 세션 토큰 발급
type AuthService interface {
	AuthURL(state string, forceConsent bool) string
	LoginWithCode(ctx context.Context, code string) (*domain.LoginResponse, error)
	LoginWithToken(ctx context.Context, kakaoAccessToken string) (*domain.LoginResponse, error)
	Refresh(refreshToken string) (*domain.TokenPair, error)
}

type authService struct {
	oauth      KakaoOAuth
	profiles   kakao.ProfileFetcher
	memberRepo repository.MemberRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(oauth KakaoOAuth, profiles kakao.ProfileFetcher, memberRepo repository.MemberRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		oauth:      oauth,
		profiles:   profiles,
		memberRepo: memberRepo,
		jwtManager: jwtManager,
	}
}

func (s *authService) AuthURL(state string, forceConsent bool) string {
	return s.oauth.AuthURL(state, forceConsent)
}

// LoginWithCode exchanges the authorization code and logs in
func (s *authService) LoginWithCode(ctx context.Context, code string) (*domain.LoginResponse, error) {
	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("kakao code exchange failed")
		return nil, common.ErrKakaoFailure.Wrap(err)
	}
	return s.LoginWithToken(ctx, token.AccessToken)
}

// LoginWithToken 기존 회원이면 세션 토큰 발급, 아니면 회원가입으로 안내
func (s *authService) LoginWithToken(ctx context.Context, kakaoAccessToken string) (*domain.LoginResponse, error) {
	profile, err := s.profiles.GetProfile(ctx, kakaoAccessToken)
	if err != nil {
		return nil, common.ErrKakaoFailure.Wrap(err)
	}

	member, err := s.memberRepo.FindByKakaoID(profile.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.LoginResponse{
			IsNewUser:        true,
			KakaoAccessToken: kakaoAccessToken,
			KakaoProfile: &domain.KakaoProfile{
				ID:           profile.ID,
				Nickname:     profile.Nickname,
				ProfileImage: profile.ProfileImage,
				Email:        profile.Email,
			},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	// 탈퇴 대신 비활성화한 회원은 다시 로그인하면 활성화
	if !member.IsActive {
		if err := s.memberRepo.UpdateFields(member.ID, map[string]interface{}{"is_active": true}); err != nil {
			return nil, err
		}
		member.IsActive = true
		pkglogger.GetLogger().Info().Str("member_id", member.ID).Msg("member reactivated")
	}

	pair, err := issueTokens(s.jwtManager, member)
	if err != nil {
		return nil, err
	}

	pkglogger.GetLogger().Info().Str("member_id", member.ID).Msg("member logged in")
	return &domain.LoginResponse{
		Member:       member.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// Refresh 리프레시 토큰으로 새 토큰 쌍 발급
func (s *authService) Refresh(refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrInvalidToken
	}

	member, err := s.memberRepo.FindByID(claims.MemberID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, common.ErrInactiveMember
	}

	return issueTokens(s.jwtManager, member)
}

func issueTokens(jwtManager *jwt.Manager, member *domain.Member) (*domain.TokenPair, error) {
	access, err := jwtManager.GenerateAccessToken(member.ID, member.Nickname)
	if err != nil {
		return nil, err
	}
	refresh, err := jwtManager.GenerateRefreshToken(member.ID)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(jwtManager.AccessExpiry().Seconds()),
	}, nil
}
