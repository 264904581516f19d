package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

// APIResponse 모든 REST 응답의 공통 봉투
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Page 페이지네이션 응답
type Page struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"total_pages"`
}

// NewPage creates Page with computed total_pages
func NewPage(items interface{}, page, size int, total int64) *Page {
	var totalPages int64
	if size > 0 {
		totalPages = total / int64(size)
		if total%int64(size) > 0 {
			totalPages++
		}
	}
	return &Page{
		Items:      items,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// SuccessResponse returns a 200 response
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse returns a 201 response
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse returns an error response with the given status
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	if status >= http.StatusInternalServerError && err != nil {
		pkglogger.GetLogger().Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg(message)
	}
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// HandleError maps a domain error to status and message
func HandleError(c *gin.Context, err error) {
	ErrorResponse(c, StatusOf(err), MessageOf(err), err)
}
