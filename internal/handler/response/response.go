package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"batch-sender/pkg/errno"
	"batch-sender/pkg/logger"
)

// Response 带业务码的通用结构，只用于 /health 这类运维接口
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// ErrorBody 业务接口的错误结构，前端只读取 error 字段
type ErrorBody struct {
	Error string `json:"error"`
}

// Success returns a success response wrapped in the envelope
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// JSON 直接输出 data，不包信封
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 按 errno.Decode 选择 HTTP 状态码，输出 {"error": msg}
func Error(c *gin.Context, err error) {
	status, code, msg := errno.Decode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", code),
			zap.Error(err))
	}
	c.JSON(status, ErrorBody{Error: msg})
}
