package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/middleware"
	"github.com/voin/voin-backend/pkg/ginutil"
)

const (
	msgLoginRequired  = "로그인이 필요합니다."
	msgInvalidRequest = "잘못된 요청입니다."
)

// currentMember returns the authenticated member id or writes 401
func currentMember(c *gin.Context) (string, bool) {
	memberID := middleware.GetMemberID(c)
	if memberID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, msgLoginRequired, nil)
		return "", false
	}
	return memberID, true
}

// bindJSON binds the body or writes 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, msgInvalidRequest, err)
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter or writes 400
func pathID(c *gin.Context, key, message string) (uint, bool) {
	id, err := ginutil.ParamUint(c, key)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, message, err)
		return 0, false
	}
	return id, true
}
