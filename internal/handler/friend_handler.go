package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/service"
)

const msgInvalidRequestID = "유효하지 않은 친구 요청 ID입니다."

// FriendHandler handles friend graph requests
type FriendHandler struct {
	service service.FriendService
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(service service.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

// Request handles POST /api/friends/request
// @Summary 친구 요청
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.FriendRequestBody true "상대 친구 코드"
// @Success 201 {object} common.APIResponse{data=domain.FriendResponse}
// @Router /api/friends/request [post]
func (h *FriendHandler) Request(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.HandleError(c, common.ErrInvalidFriendCode)
		return
	}

	result, err := h.service.Request(memberID, req.FriendCode)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "친구 요청을 보냈습니다.", result)
}

// ListReceived handles GET /api/friends/requests/received
// @Summary 받은 친구 요청
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.FriendResponse}
// @Router /api/friends/requests/received [get]
func (h *FriendHandler) ListReceived(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	result, err := h.service.ListReceived(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "받은 친구 요청 조회 성공", result)
}

// ListSent handles GET /api/friends/requests/sent
// @Summary 보낸 친구 요청
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.FriendResponse}
// @Router /api/friends/requests/sent [get]
func (h *FriendHandler) ListSent(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	result, err := h.service.ListSent(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "보낸 친구 요청 조회 성공", result)
}

// Accept handles POST /api/friends/requests/:id/accept
// @Summary 친구 요청 수락
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "친구 요청 ID"
// @Success 200 {object} common.APIResponse{data=domain.FriendResponse}
// @Router /api/friends/requests/{id}/accept [post]
func (h *FriendHandler) Accept(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	edgeID, ok := pathID(c, "id", msgInvalidRequestID)
	if !ok {
		return
	}

	result, err := h.service.Accept(memberID, edgeID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "친구 요청을 수락했습니다.", result)
}

// Reject handles POST /api/friends/requests/:id/reject
// @Summary 친구 요청 거절
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "친구 요청 ID"
// @Success 200 {object} common.APIResponse
// @Router /api/friends/requests/{id}/reject [post]
func (h *FriendHandler) Reject(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	edgeID, ok := pathID(c, "id", msgInvalidRequestID)
	if !ok {
		return
	}

	if err := h.service.Reject(memberID, edgeID); err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "친구 요청을 거절했습니다.", nil)
}

// ListFriends handles GET /api/friends
// @Summary 친구 목록
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.FriendResponse}
// @Router /api/friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	result, err := h.service.ListFriends(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "친구 목록 조회 성공", result)
}

// Remove handles DELETE /api/friends/:friendMemberId
// @Summary 친구 삭제
// @Tags friends
// @Security BearerAuth
// @Param friendMemberId path string true "친구 회원 ID"
// @Success 204
// @Router /api/friends/{friendMemberId} [delete]
func (h *FriendHandler) Remove(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	if err := h.service.Remove(memberID, c.Param("friendMemberId")); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Feed handles GET /api/friends/feed
// @Summary 친구들의 공개 카드
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.CardResponse}
// @Router /api/friends/feed [get]
func (h *FriendHandler) Feed(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	cards, err := h.service.Feed(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "친구 피드 조회 성공", cards)
}
