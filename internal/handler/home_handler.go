package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/service"
)

// HomeHandler serves the home dashboard
type HomeHandler struct {
	service service.HomeService
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(service service.HomeService) *HomeHandler {
	return &HomeHandler{service: service}
}

// Dashboard handles GET /api/home/dashboard
// @Summary 홈 대시보드
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.HomeDashboard}
// @Router /api/home/dashboard [get]
func (h *HomeHandler) Dashboard(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	dashboard, err := h.service.Dashboard(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "홈 대시보드 조회 성공", dashboard)
}

// MostOwnedCoin handles GET /api/home/most-owned-coin
// @Summary 가장 많이 받은 코인
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.MostOwnedCoin}
// @Router /api/home/most-owned-coin [get]
func (h *HomeHandler) MostOwnedCoin(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	result, err := h.service.MostOwnedCoin(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "가장 많이 받은 코인 조회 성공", result)
}

// RecentCoin handles GET /api/home/recent-coin
// @Summary 최근 받은 코인
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.RecentCoin}
// @Router /api/home/recent-coin [get]
func (h *HomeHandler) RecentCoin(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	result, err := h.service.RecentCoin(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "최근 받은 코인 조회 성공", result)
}

// MostSharedFriend handles GET /api/home/most-shared-friend
// @Summary 코인을 가장 많이 주고받은 친구
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=domain.MostSharedFriend}
// @Router /api/home/most-shared-friend [get]
func (h *HomeHandler) MostSharedFriend(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	result, err := h.service.MostSharedFriend(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "친구 조회 성공", result)
}
