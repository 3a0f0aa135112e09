package server

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"batch-sender/internal/handler"
	"batch-sender/internal/service"
	"batch-sender/pkg/monitor"
	"batch-sender/pkg/ratelimit"
	"batch-sender/pkg/validator"
)

// RouterDeps HTTP 层依赖
type RouterDeps struct {
	Transfer service.TransferPreparer
	// Limiter 为 nil 时不限流
	Limiter ratelimit.Limiter
	// StaticDir 前端页面目录，为空或不存在时不挂载
	StaticDir string
}

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(deps RouterDeps) *gin.Engine {
	// 0. 初始化监控指标和自定义校验
	monitor.Init()
	validator.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 业务路由 (限流)
	api := r.Group("/")
	if deps.Limiter != nil {
		api.Use(ratelimit.Middleware(deps.Limiter))
	}
	{
		transferHandler := handler.NewTransferHandler(deps.Transfer)
		uploadHandler := handler.NewUploadHandler()
		api.POST("/prepare-send", transferHandler.PrepareSend)
		api.POST("/upload", uploadHandler.Upload)
	}

	// 5. 前端静态页面
	mountStatic(r, deps.StaticDir)

	return r
}

func mountStatic(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return
	}
	r.Static("/static", dir)
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		r.StaticFile("/", index)
	}
}
