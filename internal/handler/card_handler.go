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

const msgInvalidCardID = "유효하지 않은 카드 ID입니다."

// CardHandler handles coin card requests
type CardHandler struct {
	service service.CardService
	search  service.CardSearchService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(service service.CardService, search service.CardSearchService) *CardHandler {
	return &CardHandler{service: service, search: search}
}

// Create handles POST /api/cards
// @Summary 카드 발급
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CreateCardRequest true "카드"
// @Success 201 {object} common.APIResponse{data=domain.CardResponse}
// @Router /api/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.service.Create(c.Request.Context(), memberID, &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "카드가 발급되었습니다.", card)
}

// ListMine handles GET /api/cards/my-cards
// @Summary 내가 만든 카드
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.CardResponse}
// @Router /api/cards/my-cards [get]
func (h *CardHandler) ListMine(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	cards, err := h.service.ListMine(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "카드 목록 조회 성공", cards)
}

// ListReceived handles GET /api/cards/received
// @Summary 친구에게 받은 카드
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.CardResponse}
// @Router /api/cards/received [get]
func (h *CardHandler) ListReceived(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	cards, err := h.service.ListReceived(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "받은 카드 조회 성공", cards)
}

// ListPublic handles GET /api/cards/public
// @Summary 공개 카드 목록
// @Tags cards
// @Produce json
// @Param page query int false "페이지 (1부터)"
// @Param size query int false "페이지 크기"
// @Success 200 {object} common.APIResponse{data=common.Page}
// @Router /api/cards/public [get]
func (h *CardHandler) ListPublic(c *gin.Context) {
	page, size := ginutil.Pagination(c)

	result, err := h.service.ListPublic(page, size)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "공개 카드 조회 성공", result)
}

// Search handles GET /api/cards/search?keyword=
// @Summary 공개 카드 검색
// @Tags cards
// @Produce json
// @Param keyword query string true "검색어"
// @Param page query int false "페이지 (1부터)"
// @Param size query int false "페이지 크기"
// @Success 200 {object} common.APIResponse{data=common.Page}
// @Router /api/cards/search [get]
func (h *CardHandler) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	page, size := ginutil.Pagination(c)

	result, err := h.search.Search(c.Request.Context(), keyword, page, size)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "카드 검색 성공", result)
}

// Get handles GET /api/cards/:cardId
// @Summary 카드 조회
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param cardId path int true "카드 ID"
// @Success 200 {object} common.APIResponse{data=domain.CardResponse}
// @Router /api/cards/{cardId} [get]
func (h *CardHandler) Get(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", msgInvalidCardID)
	if !ok {
		return
	}

	card, err := h.service.Get(memberID, cardID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "카드 조회 성공", card)
}

// UpdateVisibility handles PUT /api/cards/:cardId/visibility
// @Summary 카드 공개 여부 변경
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cardId path int true "카드 ID"
// @Param request body domain.UpdateVisibilityRequest true "공개 여부"
// @Success 200 {object} common.APIResponse{data=domain.CardResponse}
// @Router /api/cards/{cardId}/visibility [put]
func (h *CardHandler) UpdateVisibility(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", msgInvalidCardID)
	if !ok {
		return
	}
	var req domain.UpdateVisibilityRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.service.UpdateVisibility(c.Request.Context(), memberID, cardID, *req.IsPublic)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "공개 여부가 변경되었습니다.", card)
}

// Delete handles DELETE /api/cards/:cardId
// @Summary 카드 삭제
// @Tags cards
// @Security BearerAuth
// @Param cardId path int true "카드 ID"
// @Success 204
// @Router /api/cards/{cardId} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId", msgInvalidCardID)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), memberID, cardID); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
