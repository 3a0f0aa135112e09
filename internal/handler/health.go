package handler

import (
	"github.com/gin-gonic/gin"

	"batch-sender/internal/handler/response"
)

// Version 由构建参数注入: -ldflags "-X batch-sender/internal/handler.Version=..."
var Version = "dev"

// HealthCheck godoc
// @Summary Check system health
// @Description Get the current health status of the server
// @Tags system
// @Produce  json
// @Success 200 {object} response.Response
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"version": Version,
		"service": "batch-sender",
	})
}
