package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/service"
)

const msgInvalidStoryID = "유효하지 않은 스토리 ID입니다."

// StoryHandler handles story CRUD
type StoryHandler struct {
	service service.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(service service.StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

// Create handles POST /api/stories
// @Summary 스토리 작성
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CreateStoryRequest true "스토리"
// @Success 201 {object} common.APIResponse{data=domain.StoryResponse}
// @Router /api/stories [post]
func (h *StoryHandler) Create(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.CreateStoryRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.service.Create(memberID, &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "스토리가 저장되었습니다.", story)
}

// ListMine handles GET /api/stories/my-stories
// @Summary 내 스토리 목록
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.StoryResponse}
// @Router /api/stories/my-stories [get]
func (h *StoryHandler) ListMine(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	stories, err := h.service.ListMine(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "스토리 목록 조회 성공", stories)
}

// Get handles GET /api/stories/:storyId
// @Summary 스토리 조회
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param storyId path int true "스토리 ID"
// @Success 200 {object} common.APIResponse{data=domain.StoryResponse}
// @Router /api/stories/{storyId} [get]
func (h *StoryHandler) Get(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	storyID, ok := pathID(c, "storyId", msgInvalidStoryID)
	if !ok {
		return
	}

	story, err := h.service.Get(memberID, storyID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "스토리 조회 성공", story)
}

// Update handles PUT /api/stories/:storyId
// @Summary 경험 돌아보기 추가 답변
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storyId path int true "스토리 ID"
// @Param request body domain.UpdateStoryRequest true "추가 답변"
// @Success 200 {object} common.APIResponse{data=domain.StoryResponse}
// @Router /api/stories/{storyId} [put]
func (h *StoryHandler) Update(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	storyID, ok := pathID(c, "storyId", msgInvalidStoryID)
	if !ok {
		return
	}
	var req domain.UpdateStoryRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.service.AddReflection(memberID, storyID, req.AdditionalContent)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "스토리가 수정되었습니다.", story)
}

// Delete handles DELETE /api/stories/:storyId
// @Summary 스토리 삭제
// @Tags stories
// @Security BearerAuth
// @Param storyId path int true "스토리 ID"
// @Success 204
// @Router /api/stories/{storyId} [delete]
func (h *StoryHandler) Delete(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	storyID, ok := pathID(c, "storyId", msgInvalidStoryID)
	if !ok {
		return
	}

	if err := h.service.Delete(memberID, storyID); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
