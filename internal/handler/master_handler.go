package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/service"
)

const msgInvalidCoinID = "유효하지 않은 코인 ID입니다."

// MasterHandler serves read-only catalog data (coins, keywords, forms)
type MasterHandler struct {
	service service.MasterDataService
	home    service.HomeService
}

// NewMasterHandler creates a new MasterHandler
func NewMasterHandler(service service.MasterDataService, home service.HomeService) *MasterHandler {
	return &MasterHandler{service: service, home: home}
}

// All handles GET /api/master/all
// @Summary 마스터 데이터 전체
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.MasterDataResponse}
// @Router /api/master/all [get]
func (h *MasterHandler) All(c *gin.Context) {
	common.SuccessResponse(c, "마스터 데이터 조회 성공", h.service.All())
}

// Coins handles GET /api/master/coins and GET /api/coins
// @Summary 코인 목록
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.Coin}
// @Router /api/master/coins [get]
func (h *MasterHandler) Coins(c *gin.Context) {
	common.SuccessResponse(c, "코인 목록 조회 성공", h.service.Coins())
}

// Coin handles GET /api/coins/:coinId
// @Summary 코인 상세
// @Tags coins
// @Produce json
// @Param coinId path int true "코인 ID"
// @Success 200 {object} common.APIResponse{data=domain.Coin}
// @Router /api/coins/{coinId} [get]
func (h *MasterHandler) Coin(c *gin.Context) {
	coinID, ok := pathID(c, "coinId", msgInvalidCoinID)
	if !ok {
		return
	}

	coin, err := h.service.Coin(coinID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "코인 조회 성공", coin)
}

// KeywordsOf handles GET /api/master/coins/:coinId/keywords
// @Summary 코인의 키워드 목록
// @Tags master
// @Produce json
// @Param coinId path int true "코인 ID"
// @Success 200 {object} common.APIResponse{data=[]domain.Keyword}
// @Router /api/master/coins/{coinId}/keywords [get]
func (h *MasterHandler) KeywordsOf(c *gin.Context) {
	coinID, ok := pathID(c, "coinId", msgInvalidCoinID)
	if !ok {
		return
	}

	keywords, err := h.service.KeywordsOf(coinID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "키워드 조회 성공", keywords)
}

// Keywords handles GET /api/master/keywords
// @Summary 코인별 키워드 묶음
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.KeywordsByCoin}
// @Router /api/master/keywords [get]
func (h *MasterHandler) Keywords(c *gin.Context) {
	common.SuccessResponse(c, "키워드 조회 성공", h.service.KeywordsByCoin())
}

// SituationContexts handles GET /api/master/situation-contexts
// @Summary 상황 맥락 목록
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.SituationContext}
// @Router /api/master/situation-contexts [get]
func (h *MasterHandler) SituationContexts(c *gin.Context) {
	common.SuccessResponse(c, "상황 맥락 조회 성공", h.service.SituationContexts())
}

// StoryTypes handles GET /api/master/story-types
// @Summary 스토리 유형 목록
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.StoryTypeInfo}
// @Router /api/master/story-types [get]
func (h *MasterHandler) StoryTypes(c *gin.Context) {
	common.SuccessResponse(c, "스토리 유형 조회 성공", h.service.StoryTypes())
}

// CardOptions handles GET /api/master/card-options
// @Summary 카드 선택 옵션
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.CardOptionsResponse}
// @Router /api/master/card-options [get]
func (h *MasterHandler) CardOptions(c *gin.Context) {
	common.SuccessResponse(c, "선택 옵션 조회 성공", h.service.CardOptions())
}

// Forms handles GET /api/master/forms
// @Summary 질문 폼 목록
// @Tags master
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.Form}
// @Router /api/master/forms [get]
func (h *MasterHandler) Forms(c *gin.Context) {
	common.SuccessResponse(c, "폼 목록 조회 성공", h.service.Forms())
}

// MyCoins handles GET /api/coins/my
// @Summary 내가 모은 코인
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} common.APIResponse{data=[]domain.MemberCoinResponse}
// @Router /api/coins/my [get]
func (h *MasterHandler) MyCoins(c *gin.Context) {
	memberID, ok := currentMember(c)
	if !ok {
		return
	}

	coins, err := h.home.CoinCollection(memberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessResponse(c, "코인 컬렉션 조회 성공", coins)
}
