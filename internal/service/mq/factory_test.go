package mq

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer("none", nil, "t", nil)
	require.NoError(t, err)
	assert.IsType(t, NoopProducer{}, p)
	assert.NoError(t, p.Publish(context.Background(), "t", "k", []byte("{}")))

	p, err = NewProducer("kafka", []string{"localhost:9092"}, "t", nil)
	require.NoError(t, err)
	assert.IsType(t, &KafkaProducer{}, p)
	assert.NoError(t, p.Close())

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()
	p, err = NewProducer("redis", nil, "t", rdb)
	require.NoError(t, err)
	assert.IsType(t, &RedisProducer{}, p)
}

func TestNewProducer_Errors(t *testing.T) {
	_, err := NewProducer("redis", nil, "t", nil)
	assert.Error(t, err)

	_, err = NewProducer("kafka", nil, "t", nil)
	assert.Error(t, err)

	_, err = NewProducer("rabbitmq", nil, "t", nil)
	assert.Error(t, err)
}
