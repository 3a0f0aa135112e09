package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	TON       TONConfig       `mapstructure:"ton"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MQ        MQConfig        `mapstructure:"mq"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
}

type AppConfig struct {
	Env       string `mapstructure:"env"`
	HttpPort  string `mapstructure:"http_port"`
	StaticDir string `mapstructure:"static_dir"` // 前端静态页面目录，为空或不存在时不挂载
}

type TONConfig struct {
	Network        string        `mapstructure:"network"`         // mainnet / testnet
	ConfigURL      string        `mapstructure:"config_url"`      // 自定义 liteserver 配置，优先于 network
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 单次组装 (含链上查询) 的整体超时
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"` // "memory" or "redis"
	Window  time.Duration `mapstructure:"window"`
	Max     int           `mapstructure:"max"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MQConfig struct {
	Type  string `mapstructure:"type"` // "none", "redis" or "kafka"
	Topic string `mapstructure:"topic"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c Config) NeedsRedis() bool {
	return (c.RateLimit.Enabled && c.RateLimit.Backend == "redis") || c.MQ.Type == "redis"
}

var Global Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// 环境变量设置: ton.network -> TON_NETWORK
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "3001")
	viper.SetDefault("app.static_dir", "public")

	viper.SetDefault("ton.network", "mainnet")
	viper.SetDefault("ton.config_url", "")
	viper.SetDefault("ton.request_timeout", "30s")

	// 每个 IP 15 分钟 100 次
	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.backend", "memory")
	viper.SetDefault("ratelimit.window", "15m")
	viper.SetDefault("ratelimit.max", 100)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("mq.type", "none")
	viper.SetDefault("mq.topic", "batch_sender_events")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
}
