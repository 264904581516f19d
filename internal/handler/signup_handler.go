package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/service"
)

// SignupHandler handles the three step signup flow
type SignupHandler struct {
	service service.SignupService
}

// NewSignupHandler creates a new SignupHandler
func NewSignupHandler(service service.SignupService) *SignupHandler {
	return &SignupHandler{service: service}
}

// Start handles POST /signup/start
// @Summary 회원가입 시작
// @Tags signup
// @Accept json
// @Produce json
// @Param request body domain.SignupStartRequest true "카카오 토큰"
// @Success 200 {object} common.APIResponse{data=domain.SignupStepResponse}
// @Router /signup/start [post]
func (h *SignupHandler) Start(c *gin.Context) {
	var req domain.SignupStartRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Start(c.Request.Context(), req.KakaoAccessToken)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "회원가입을 시작합니다.", result)
}

// Nickname handles POST /signup/nickname
// @Summary 닉네임 설정
// @Tags signup
// @Accept json
// @Produce json
// @Param request body domain.SignupNicknameRequest true "닉네임 선택"
// @Success 200 {object} common.APIResponse{data=domain.SignupStepResponse}
// @Router /signup/nickname [post]
func (h *SignupHandler) Nickname(c *gin.Context) {
	var req domain.SignupNicknameRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.SetNickname(c.Request.Context(), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "닉네임이 설정되었습니다.", result)
}

// ProfileImage handles POST /signup/profile-image
// @Summary 프로필 이미지 설정 및 가입 완료
// @Tags signup
// @Accept json
// @Produce json
// @Param request body domain.SignupCompleteRequest true "닉네임과 이미지 선택"
// @Success 201 {object} common.APIResponse{data=domain.SignupCompleteResponse}
// @Router /signup/profile-image [post]
func (h *SignupHandler) ProfileImage(c *gin.Context) {
	var req domain.SignupCompleteRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Complete(c.Request.Context(), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "회원가입이 완료되었습니다.", result)
}

// Validate handles GET /signup/validate?nickname=
// @Summary 닉네임 사용 가능 여부
// @Tags signup
// @Produce json
// @Param nickname query string true "닉네임"
// @Success 200 {object} common.APIResponse{data=domain.NicknameCheckResponse}
// @Router /signup/validate [get]
func (h *SignupHandler) Validate(c *gin.Context) {
	nickname, ok := c.GetQuery("nickname")
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, "닉네임을 입력해주세요.", nil)
		return
	}

	result, err := h.service.CheckNickname(nickname)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "닉네임 확인 결과", result)
}
