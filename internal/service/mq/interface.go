package mq

import "context"

// Producer 生产者接口
type Producer interface {
	// Publish 发送消息
	// key: 分区键，这里使用发送方钱包地址，保证同一钱包的事件有序
	Publish(ctx context.Context, topic string, key string, payload []byte) error

	// Close 释放底层连接
	Close() error
}

// NoopProducer 不发送任何消息 (mq.type = none)
type NoopProducer struct{}

func (NoopProducer) Publish(context.Context, string, string, []byte) error { return nil }

func (NoopProducer) Close() error { return nil }
