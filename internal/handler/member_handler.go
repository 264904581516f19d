package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/service"
	"github.com/voin/voin-backend/pkg/ginutil"
)

// MemberHandler handles member profile requests
type MemberHandler struct {
	service service.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(service service.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// GetMe handles GET /api/members/me
// @Summary 내 정보
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.MemberResponse}
// @Router /api/members/me [get]
func (h *MemberHandler) GetMe(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	member, err := h.service.GetMe(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "회원 정보 조회 성공", member)
}

// UpdateNickname handles PUT /api/members/me/nickname
// @Summary 닉네임 변경
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UpdateNicknameRequest true "새 닉네임"
// @Success 200 {object} common.APIResponse{data=domain.MemberResponse}
// @Router /api/members/me/nickname [put]
func (h *MemberHandler) UpdateNickname(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.UpdateNicknameRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.service.UpdateNickname(memberID, req.Nickname)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "닉네임이 변경되었습니다.", member)
}

// UpdateProfileImage handles PUT /api/members/me/profile-image
// @Summary 프로필 이미지 변경
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UpdateProfileImageRequest true "이미지 선택"
// @Success 200 {object} common.APIResponse{data=domain.MemberResponse}
// @Router /api/members/me/profile-image [put]
func (h *MemberHandler) UpdateProfileImage(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.UpdateProfileImageRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.service.UpdateProfileImage(c.Request.Context(), memberID, &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "프로필 이미지가 변경되었습니다.", member)
}

// Stats handles GET /api/members/me/stats
// @Summary 내 활동 통계
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.MemberStats}
// @Router /api/members/me/stats [get]
func (h *MemberHandler) Stats(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "통계 조회 성공", stats)
}

// Deactivate handles POST /api/members/me/deactivate
// @Summary 계정 비활성화
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse
// @Router /api/members/me/deactivate [post]
func (h *MemberHandler) Deactivate(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(memberID); err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "계정이 비활성화되었습니다.", nil)
}

// DeleteAccount handles DELETE /api/members/me
// @Summary 회원 탈퇴
// @Tags members
// @Security BearerAuth
// @Param X-Kakao-Access-Token header string false "카카오 앱 연결 해제용 토큰"
// @Success 204
// @Router /api/members/me [delete]
func (h *MemberHandler) DeleteAccount(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), memberID, c.GetHeader("X-Kakao-Access-Token")); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search handles GET /api/members/search?nickname=
// @Summary 닉네임으로 회원 검색
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param nickname query string true "검색어"
// @Success 200 {object} common.APIResponse{data=[]domain.MemberResponse}
// @Router /api/members/search [get]
func (h *MemberHandler) Search(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	keyword := strings.TrimSpace(c.Query("nickname"))
	if keyword == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "검색어를 입력해주세요.", nil)
		return
	}

	members, err := h.service.SearchByNickname(memberID, keyword)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "회원 검색 성공", members)
}

// ByFriendCode handles GET /api/members/by-friend-code?code=
// @Summary 친구 코드로 회원 조회
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param code query string true "친구 코드"
// @Success 200 {object} common.APIResponse{data=domain.MemberResponse}
// @Router /api/members/by-friend-code [get]
func (h *MemberHandler) ByFriendCode(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if !ginutil.ValidFriendCode(code) {
		common.HandleError(c, common.ErrInvalidFriendCode)
		return
	}

	member, err := h.service.FindByFriendCode(code)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "회원 조회 성공", member)
}
