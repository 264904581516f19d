package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/service"
)

// AuthHandler handles Kakao login and token refresh
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// AuthURL handles GET /api/auth/kakao/url
// @Summary 카카오 로그인 URL
// @Tags auth
// @Produce json
// @Param state query string false "CSRF state"
// @Param force_consent query bool false "동의 화면 강제 표시"
// @Success 200 {object} common.APIResponse
// @Router /api/auth/kakao/url [get]
func (h *AuthHandler) AuthURL(c *gin.Context) {
	forceConsent := c.Query("force_consent") == "true"
	url := h.service.AuthURL(c.Query("state"), forceConsent)
	common.SuccessResponse(c, "카카오 로그인 URL", gin.H{"url": url})
}

// Callback handles GET /api/auth/kakao/callback
// @Summary 카카오 인가 코드 콜백
// @Tags auth
// @Produce json
// @Param code query string true "인가 코드"
// @Success 200 {object} common.APIResponse{data=domain.LoginResponse}
// @Router /api/auth/kakao/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	if errCode := c.Query("error"); errCode != "" {
		common.ErrorResponse(c, http.StatusBadRequest, "카카오 로그인이 취소되었습니다.", nil)
		return
	}
	code := c.Query("code")
	if code == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "인가 코드가 필요합니다.", nil)
		return
	}

	result, err := h.service.LoginWithCode(c.Request.Context(), code)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, loginMessage(result), result)
}

// Verify handles POST /api/auth/kakao/verify
// @Summary 카카오 액세스 토큰 로그인
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.KakaoTokenRequest true "카카오 토큰"
// @Success 200 {object} common.APIResponse{data=domain.LoginResponse}
// @Router /api/auth/kakao/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req domain.KakaoTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.LoginWithToken(c.Request.Context(), req.AccessToken)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, loginMessage(result), result)
}

// Refresh handles POST /api/auth/refresh
// @Summary 토큰 재발급
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RefreshRequest true "리프레시 토큰"
// @Success 200 {object} common.APIResponse{data=domain.TokenPair}
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req domain.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "토큰이 재발급되었습니다.", pair)
}

func loginMessage(result *domain.LoginResponse) string {
	if result.IsNewUser {
		return "회원가입이 필요합니다."
	}
	return "로그인 성공"
}
