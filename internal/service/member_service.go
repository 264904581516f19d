package service

import (
	"context"
	"errors"
	"strings"

	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	"github.com/voin/voin-backend/pkg/kakao"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"github.com/voin/voin-backend/pkg/storage"
	"gorm.io/gorm"
)

const memberSearchLimit = 20

// MemberService 회원 정보 조회/수정/탈퇴
type MemberService interface {
	GetMe(memberID string) (*domain.MemberResponse, error)
	UpdateNickname(memberID, nickname string) (*domain.MemberResponse, error)
	UpdateProfileImage(ctx context.Context, memberID string, req *domain.UpdateProfileImageRequest) (*domain.MemberResponse, error)
	SearchByNickname(callerID, keyword string) ([]*domain.MemberResponse, error)
	FindByFriendCode(code string) (*domain.MemberResponse, error)
	GetStats(memberID string) (*domain.MemberStats, error)
	Deactivate(memberID string) error
	DeleteAccount(ctx context.Context, memberID, kakaoAccessToken string) error
}

// KakaoUnlinker 탈퇴 시 카카오 앱 연결 해제
type KakaoUnlinker interface {
	Unlink(ctx context.Context, accessToken string) (string, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	cardRepo   repository.CardRepository
	friendRepo repository.FriendRepository
	profiles   kakao.ProfileFetcher
	unlinker   KakaoUnlinker
	images     *profileImageResolver
	search     CardSearchService
}

// NewMemberService creates a new MemberService
func NewMemberService(
	memberRepo repository.MemberRepository,
	cardRepo repository.CardRepository,
	friendRepo repository.FriendRepository,
	profiles kakao.ProfileFetcher,
	unlinker KakaoUnlinker,
	store storage.ImageStore,
	maxImageSize int64,
	search CardSearchService,
) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		cardRepo:   cardRepo,
		friendRepo: friendRepo,
		profiles:   profiles,
		unlinker:   unlinker,
		images:     newProfileImageResolver(store, maxImageSize),
		search:     search,
	}
}

func (s *memberService) find(memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetMe 내 정보 조회
func (s *memberService) GetMe(memberID string) (*domain.MemberResponse, error) {
	member, err := s.find(memberID)
	if err != nil {
		return nil, err
	}
	return member.ToResponse(), nil
}

// UpdateNickname 닉네임 변경 (형식 검증 + 중복 확인)
func (s *memberService) UpdateNickname(memberID, nickname string) (*domain.MemberResponse, error) {
	member, err := s.find(memberID)
	if err != nil {
		return nil, err
	}
	if member.Nickname == nickname {
		return member.ToResponse(), nil
	}

	if err := common.ValidateNickname(nickname); err != nil {
		return nil, err
	}
	taken, err := s.memberRepo.ExistsByNickname(nickname, memberID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrNicknameTaken
	}

	if err := s.memberRepo.UpdateFields(memberID, map[string]interface{}{"nickname": nickname}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrNicknameTaken
		}
		return nil, err
	}

	member.Nickname = nickname
	return member.ToResponse(), nil
}

// UpdateProfileImage 프로필 이미지 변경
func (s *memberService) UpdateProfileImage(ctx context.Context, memberID string, req *domain.UpdateProfileImageRequest) (*domain.MemberResponse, error) {
	member, err := s.find(memberID)
	if err != nil {
		return nil, err
	}

	kakaoImage := ""
	if req.UseKakaoProfileImage {
		if req.KakaoAccessToken == "" {
			return nil, common.ErrImageChoiceMissing
		}
		profile, err := s.profiles.GetProfile(ctx, req.KakaoAccessToken)
		if err != nil {
			return nil, common.ErrKakaoFailure.Wrap(err)
		}
		// 다른 카카오 계정의 이미지는 쓸 수 없다
		if profile.ID != member.KakaoID {
			return nil, common.ErrInvalidToken
		}
		kakaoImage = profile.ProfileImage
	}

	image, err := s.images.resolve(ctx, req.ImageChoice, kakaoImage, false)
	if err != nil {
		return nil, err
	}
	if image != member.ProfileImage {
		if err := s.memberRepo.UpdateFields(memberID, map[string]interface{}{"profile_image": image}); err != nil {
			return nil, err
		}
		member.ProfileImage = image
	}
	return member.ToResponse(), nil
}

// SearchByNickname 닉네임 부분 검색 (대소문자 무시, 활성 회원만, 본인 제외)
func (s *memberService) SearchByNickname(callerID, keyword string) ([]*domain.MemberResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*domain.MemberResponse{}, nil
	}

	members, err := s.memberRepo.SearchByNickname(keyword, callerID, memberSearchLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// FindByFriendCode 친구 코드로 회원 조회
func (s *memberService) FindByFriendCode(code string) (*domain.MemberResponse, error) {
	member, err := s.memberRepo.FindByFriendCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrFriendCodeNotFound
		}
		return nil, err
	}
	return member.ToResponse(), nil
}

// GetStats 카드 수, 공개 카드 수, 친구 수
func (s *memberService) GetStats(memberID string) (*domain.MemberStats, error) {
	if _, err := s.find(memberID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.CountByMember(memberID)
	if err != nil {
		return nil, err
	}
	publicCards, err := s.cardRepo.CountPublicByMember(memberID)
	if err != nil {
		return nil, err
	}
	friends, err := s.friendRepo.CountAccepted(memberID)
	if err != nil {
		return nil, err
	}

	return &domain.MemberStats{
		CardCount:       cards,
		PublicCardCount: publicCards,
		FriendCount:     friends,
	}, nil
}

// Deactivate 비활성화 (데이터는 유지, 다시 로그인하면 활성화)
func (s *memberService) Deactivate(memberID string) error {
	member, err := s.find(memberID)
	if err != nil {
		return err
	}
	if !member.IsActive {
		return nil
	}
	if err := s.memberRepo.UpdateFields(memberID, map[string]interface{}{"is_active": false}); err != nil {
		return err
	}
	pkglogger.GetLogger().Info().Str("member_id", memberID).Msg("member deactivated")
	return nil
}

// DeleteAccount 회원과 작성한 카드, 스토리, 친구 관계를 모두 삭제
func (s *memberService) DeleteAccount(ctx context.Context, memberID, kakaoAccessToken string) error {
	if _, err := s.find(memberID); err != nil {
		return err
	}

	cards, err := s.cardRepo.FindByMember(memberID)
	if err != nil {
		return err
	}

	if err := s.memberRepo.DeleteWithContent(memberID); err != nil {
		return err
	}

	for _, card := range cards {
		s.search.Remove(ctx, card.ID)
	}

	// 연결 해제 실패는 탈퇴 자체를 막지 않는다
	if kakaoAccessToken != "" && s.unlinker != nil {
		if _, err := s.unlinker.Unlink(ctx, kakaoAccessToken); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Str("member_id", memberID).Msg("kakao unlink failed")
		}
	}

	pkglogger.GetLogger().Info().Str("member_id", memberID).Int("cards", len(cards)).Msg("member deleted")
	return nil
}
