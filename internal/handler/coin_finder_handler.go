package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/service"
)

// CoinFinderHandler 코인 찾기 화면 흐름. 스토리 작성부터 카드 발급까지 한 곳에서 제공한다.
type CoinFinderHandler struct {
	stories  service.StoryService
	cards    service.CardService
	master   service.MasterDataService
	classify service.ClassifyService
}

// NewCoinFinderHandler creates a new CoinFinderHandler
func NewCoinFinderHandler(
	stories service.StoryService,
	cards service.CardService,
	master service.MasterDataService,
	classify service.ClassifyService,
) *CoinFinderHandler {
	return &CoinFinderHandler{stories: stories, cards: cards, master: master, classify: classify}
}

// Types handles GET /api/coin-finder/types
// @Summary 스토리 유형 목록
// @Tags coin-finder
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.StoryTypeInfo}
// @Router /api/coin-finder/types [get]
func (h *CoinFinderHandler) Types(c *gin.Context) {
	common.SuccessResponse(c, "스토리 유형 조회 성공", h.master.StoryTypes())
}

// SituationContexts handles GET /api/coin-finder/situation-contexts
// @Summary 상황 맥락 목록
// @Tags coin-finder
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.SituationContext}
// @Router /api/coin-finder/situation-contexts [get]
func (h *CoinFinderHandler) SituationContexts(c *gin.Context) {
	common.SuccessResponse(c, "상황 맥락 조회 성공", h.master.SituationContexts())
}

// SelectionOptions handles GET /api/coin-finder/selection-options
// @Summary 카드 선택 옵션
// @Tags coin-finder
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.CardOptionsResponse}
// @Router /api/coin-finder/selection-options [get]
func (h *CoinFinderHandler) SelectionOptions(c *gin.Context) {
	common.SuccessResponse(c, "선택 옵션 조회 성공", h.master.CardOptions())
}

// Form handles GET /api/coin-finder/forms/:formId
// @Summary 질문 폼 조회
// @Tags coin-finder
// @Produce json
// @Param formId path int true "폼 ID"
// @Success 200 {object} common.APIResponse{data=domain.Form}
// @Router /api/coin-finder/forms/{formId} [get]
func (h *CoinFinderHandler) Form(c *gin.Context) {
	formID, ok := pathID(c, "formId", "유효하지 않은 폼 ID입니다.")
	if !ok {
		return
	}

	form, err := h.master.Form(formID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "폼 조회 성공", form)
}

// DailyDiary handles POST /api/coin-finder/daily-diary
// @Summary 오늘의 일기 작성
// @Tags coin-finder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.DailyDiaryRequest true "일기"
// @Success 201 {object} common.APIResponse{data=domain.StoryResponse}
// @Router /api/coin-finder/daily-diary [post]
func (h *CoinFinderHandler) DailyDiary(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.DailyDiaryRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.stories.Create(memberID, &domain.CreateStoryRequest{
		StoryType: domain.StoryTypeDailyDiary,
		Content:   req.Content,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "일기가 저장되었습니다.", story)
}

// ReflectionStep1 handles POST /api/coin-finder/experience-review/step1
// @Summary 경험 돌아보기 1단계
// @Tags coin-finder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.ReflectionStep1Request true "상황과 첫 답변"
// @Success 201 {object} common.APIResponse{data=domain.StoryResponse}
// @Router /api/coin-finder/experience-review/step1 [post]
func (h *CoinFinderHandler) ReflectionStep1(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.ReflectionStep1Request
	if !bindJSON(c, &req) {
		return
	}

	situationID := req.SituationContextID
	story, err := h.stories.Create(memberID, &domain.CreateStoryRequest{
		StoryType:          domain.StoryTypeExperienceReflection,
		Content:            req.Content,
		SituationContextID: &situationID,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "1단계가 저장되었습니다.", story)
}

// ReflectionStep2 handles POST /api/coin-finder/experience-review/step2
// @Summary 경험 돌아보기 2단계
// @Tags coin-finder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.ReflectionStep2Request true "추가 답변"
// @Success 200 {object} common.APIResponse{data=domain.StoryResponse}
// @Router /api/coin-finder/experience-review/step2 [post]
func (h *CoinFinderHandler) ReflectionStep2(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.ReflectionStep2Request
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.stories.AddReflection(memberID, req.StoryID, req.AdditionalContent)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "2단계가 저장되었습니다.", story)
}

// CreateCard handles POST /api/coin-finder/create-card
// @Summary 코인 카드 발급
// @Tags coin-finder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CreateCardRequest true "코인과 키워드 선택"
// @Success 201 {object} common.APIResponse{data=domain.CardResponse}
// @Router /api/coin-finder/create-card [post]
func (h *CoinFinderHandler) CreateCard(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}
	var req domain.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cards.Create(c.Request.Context(), memberID, &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.CreatedResponse(c, "카드가 발급되었습니다.", card)
}

// Classify handles POST /api/coin-finder/classify
// @Summary AI 장점 분류
// @Tags coin-finder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.ClassifyRequest true "분류할 글"
// @Success 200 {object} common.APIResponse{data=domain.ClassifyResponse}
// @Router /api/coin-finder/classify [post]
func (h *CoinFinderHandler) Classify(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}
	var req domain.ClassifyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.classify.Classify(c.Request.Context(), req.Text)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "분류 완료", result)
}
