package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	"github.com/voin/voin-backend/pkg/jwt"
	"github.com/voin/voin-backend/pkg/kakao"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"github.com/voin/voin-backend/pkg/storage"
	"gorm.io/gorm"
)

// SignupService 3단계 회원가입. 서버는 상태를 저장하지 않고 매 단계 카카오 토큰으로 신원을 확인한다.
type SignupService interface {
	Start(ctx context.Context, kakaoAccessToken string) (*domain.SignupStepResponse, error)
	SetNickname(ctx context.Context, req *domain.SignupNicknameRequest) (*domain.SignupStepResponse, error)
	Complete(ctx context.Context, req *domain.SignupCompleteRequest) (*domain.SignupCompleteResponse, error)
	CheckNickname(nickname string) (*domain.NicknameCheckResponse, error)
}

type signupService struct {
	profiles   kakao.ProfileFetcher
	memberRepo repository.MemberRepository
	codes      FriendCodeGenerator
	images     *profileImageResolver
	jwtManager *jwt.Manager
}

// NewSignupService creates a new SignupService
func NewSignupService(
	profiles kakao.ProfileFetcher,
	memberRepo repository.MemberRepository,
	codes FriendCodeGenerator,
	store storage.ImageStore,
	maxImageSize int64,
	jwtManager *jwt.Manager,
) SignupService {
	return &signupService{
		profiles:   profiles,
		memberRepo: memberRepo,
		codes:      codes,
		images:     newProfileImageResolver(store, maxImageSize),
		jwtManager: jwtManager,
	}
}

// unregisteredProfile 카카오 프로필을 조회하고 미가입자인지 확인
func (s *signupService) unregisteredProfile(ctx context.Context, token string) (*kakao.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, token)
	if err != nil {
		return nil, common.ErrKakaoFailure.Wrap(err)
	}
	exists, err := s.memberRepo.ExistsByKakaoID(profile.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyRegistered
	}
	return profile, nil
}

// Start 1단계: 카카오 프로필 확인 후 닉네임 설정으로
func (s *signupService) Start(ctx context.Context, kakaoAccessToken string) (*domain.SignupStepResponse, error) {
	profile, err := s.unregisteredProfile(ctx, kakaoAccessToken)
	if err != nil {
		return nil, err
	}

	return &domain.SignupStepResponse{
		CurrentStep:     domain.SignupStepNickname,
		NextStep:        domain.SignupStepProfileImage,
		StepDescription: domain.SignupStepNickname.Description(),
		KakaoProfile: &domain.KakaoProfileSnapshot{
			Nickname:     kakaoNickname(profile),
			ProfileImage: profile.ProfileImage,
			Email:        profile.Email,
		},
	}, nil
}

// SetNickname 2단계: 닉네임 검증. 아직 저장하지 않는다.
func (s *signupService) SetNickname(ctx context.Context, req *domain.SignupNicknameRequest) (*domain.SignupStepResponse, error) {
	profile, err := s.unregisteredProfile(ctx, req.KakaoAccessToken)
	if err != nil {
		return nil, err
	}

	nickname, err := s.resolveNickname(profile, req.NicknameChoice)
	if err != nil {
		return nil, err
	}

	return &domain.SignupStepResponse{
		CurrentStep:     domain.SignupStepProfileImage,
		NextStep:        domain.SignupStepCompleted,
		StepDescription: domain.SignupStepProfileImage.Description(),
		Nickname:        nickname,
	}, nil
}

// Complete 3단계: 이미지 결정, 친구 코드 발급, 회원 저장, 세션 토큰 발급
func (s *signupService) Complete(ctx context.Context, req *domain.SignupCompleteRequest) (*domain.SignupCompleteResponse, error) {
	profile, err := s.unregisteredProfile(ctx, req.KakaoAccessToken)
	if err != nil {
		return nil, err
	}

	nickname, err := s.resolveNickname(profile, req.NicknameChoice)
	if err != nil {
		return nil, err
	}

	image, err := s.images.resolve(ctx, req.ImageChoice, profile.ProfileImage, true)
	if err != nil {
		return nil, err
	}

	member, err := s.createMember(profile, nickname, image)
	if err != nil {
		return nil, err
	}

	pair, err := issueTokens(s.jwtManager, member)
	if err != nil {
		return nil, err
	}

	signupsTotal.Inc()
	pkglogger.GetLogger().Info().
		Str("member_id", member.ID).
		Str("nickname", member.Nickname).
		Msg("signup completed")

	return &domain.SignupCompleteResponse{
		CurrentStep:  domain.SignupStepCompleted,
		Member:       member.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// createMember inserts the member. A unique-index hit is re-examined to tell
// an already registered account or a taken nickname from a friend code
// collision, which is retried with a fresh code.
func (s *signupService) createMember(profile *kakao.Profile, nickname, image string) (*domain.Member, error) {
	for attempt := 0; attempt < friendCodeAttempts; attempt++ {
		code, err := nextFriendCode(s.codes, s.memberRepo)
		if err != nil {
			return nil, err
		}

		member := &domain.Member{
			ID:           uuid.New().String(),
			KakaoID:      profile.ID,
			Nickname:     nickname,
			ProfileImage: image,
			Email:        profile.Email,
			FriendCode:   code,
			IsActive:     true,
		}
		err = s.memberRepo.Create(member)
		if err == nil {
			return member, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		if exists, _ := s.memberRepo.ExistsByKakaoID(profile.ID); exists {
			return nil, common.ErrAlreadyRegistered
		}
		if taken, _ := s.memberRepo.ExistsByNickname(nickname, ""); taken {
			return nil, common.ErrNicknameTaken
		}
		pkglogger.GetLogger().Warn().Str("friend_code", code).Msg("friend code collision, retrying")
	}
	return nil, errFriendCodeExhausted
}

func (s *signupService) resolveNickname(profile *kakao.Profile, choice domain.NicknameChoice) (string, error) {
	nickname := choice.Nickname
	if choice.UseKakaoNickname {
		nickname = kakaoNickname(profile)
	}
	if err := common.ValidateNickname(nickname); err != nil {
		return "", err
	}

	taken, err := s.memberRepo.ExistsByNickname(nickname, "")
	if err != nil {
		return "", err
	}
	if taken {
		return "", common.ErrNicknameTaken
	}
	return nickname, nil
}

// CheckNickname 닉네임 사용 가능 여부 (형식 + 중복)
func (s *signupService) CheckNickname(nickname string) (*domain.NicknameCheckResponse, error) {
	resp := &domain.NicknameCheckResponse{Nickname: nickname}
	if err := common.ValidateNickname(nickname); err != nil {
		resp.Message = common.MessageOf(err)
		return resp, nil
	}

	taken, err := s.memberRepo.ExistsByNickname(nickname, "")
	if err != nil {
		return nil, err
	}
	if taken {
		resp.Message = common.ErrNicknameTaken.Message()
		return resp, nil
	}

	resp.Available = true
	resp.Message = "사용 가능한 닉네임입니다."
	return resp, nil
}

func kakaoNickname(profile *kakao.Profile) string {
	if profile.Nickname == "" {
		return domain.DefaultKakaoNickname
	}
	return profile.Nickname
}
