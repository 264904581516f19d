package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/pkg/jwt"
)

const (
	memberIDKey = "memberID"
	nicknameKey = "nickname"
)

// JWTAuth JWT authentication middleware.
// WebSocket 핸드셰이크는 헤더를 못 붙이는 클라이언트가 있어 access_token 쿼리도 허용한다.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			common.ErrorResponse(c, 401, "인증 토큰이 필요합니다.", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.HandleError(c, common.ErrExpiredToken)
			} else {
				common.HandleError(c, common.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		c.Set(memberIDKey, claims.MemberID())
		c.Set(nicknameKey, claims.Nickname)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		if token := c.Query("access_token"); token != "" {
			return token, true
		}
	}
	return "", false
}

// GetMemberID extracts member ID from context
func GetMemberID(c *gin.Context) string {
	return c.GetString(memberIDKey)
}

// GetNickname extracts nickname from context
func GetNickname(c *gin.Context) string {
	return c.GetString(nicknameKey)
}
