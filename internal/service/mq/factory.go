package mq

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewProducer 按配置选择事件通道: none / redis / kafka
func NewProducer(kind string, brokers []string, topic string, rdb *redis.Client) (Producer, error) {
	switch kind {
	case "", "none":
		return NoopProducer{}, nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("mq.type=redis 需要 Redis 连接")
		}
		return NewRedisProducer(rdb), nil
	case "kafka":
		if len(brokers) == 0 {
			return nil, errors.New("mq.type=kafka 需要配置 kafka.brokers")
		}
		return NewKafkaProducer(brokers, topic), nil
	default:
		return nil, fmt.Errorf("unknown mq type %q", kind)
	}
}
