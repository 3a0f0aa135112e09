package main

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"batch-sender/internal/server"
	"batch-sender/internal/service"
	"batch-sender/internal/service/mq"
	"batch-sender/pkg/batch"
	"batch-sender/pkg/config"
	"batch-sender/pkg/database"
	"batch-sender/pkg/jetton"
	"batch-sender/pkg/logger"
	"batch-sender/pkg/ratelimit"
	"batch-sender/pkg/tonclient"

	_ "batch-sender/docs/swagger"
)

// @title Batch Sender API
// @version 1.0
// @description 为 TON / Jetton 批量转账生成待签名消息
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3001
// @BasePath /
func main() {
	// 0. 初始化 Config
	config.Init()
	cfg := config.Global

	// 1. 初始化 Logger
	logger.Init(cfg.App.Env)
	defer logger.Sync()

	// 2. 连接 Redis (仅在限流或事件通道需要时)
	var rdb *redis.Client
	if cfg.NeedsRedis() {
		var err error
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		defer rdb.Close()
	}

	// 3. TON liteclient
	configURL := cfg.TON.ConfigURL
	if configURL == "" {
		var err error
		configURL, err = tonclient.ConfigURL(cfg.TON.Network)
		if err != nil {
			logger.Fatal("TON 网络配置错误", zap.Error(err))
		}
	}
	tonClient := tonclient.New(configURL)
	defer tonClient.Close()
	logger.Info("TON liteserver 配置", zap.String("network", cfg.TON.Network), zap.String("config_url", configURL))

	// 4. 事件通道
	producer, err := mq.NewProducer(cfg.MQ.Type, cfg.Kafka.Brokers, cfg.MQ.Topic, rdb)
	if err != nil {
		logger.Fatal("初始化事件通道失败", zap.Error(err))
	}
	defer producer.Close()
	logger.Info("事件通道", zap.String("type", cfg.MQ.Type), zap.String("topic", cfg.MQ.Topic))

	// 5. 核心服务
	assembler := batch.NewAssembler(jetton.NewResolver(tonClient))
	transferService := service.NewTransferService(assembler, producer, cfg.MQ.Topic, cfg.TON.RequestTimeout)

	// 6. 限流
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		switch cfg.RateLimit.Backend {
		case "redis":
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
		default:
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
		}
		logger.Info("限流已开启",
			zap.String("backend", cfg.RateLimit.Backend),
			zap.Int("max", cfg.RateLimit.Max),
			zap.Duration("window", cfg.RateLimit.Window))
	}

	// 7. HTTP Router
	r := server.NewHTTPRouter(server.RouterDeps{
		Transfer:  transferService,
		Limiter:   limiter,
		StaticDir: cfg.App.StaticDir,
	})

	// 8. 启动应用 (阻塞)
	app := server.New(server.Config{
		HttpPort:        cfg.App.HttpPort,
		ShutdownTimeout: 5 * time.Second,
	}, r)
	app.Run()

	logger.Info("系统已退出")
}
