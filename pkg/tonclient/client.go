package tonclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/ton"
	"go.uber.org/zap"

	"batch-sender/pkg/logger"
)

// 公共 liteserver 配置
const (
	MainnetConfigURL = "https://ton.org/global.config.json"
	TestnetConfigURL = "https://ton.org/testnet-global.config.json"
)

// ConfigURL returns the public liteserver config for a network name.
func ConfigURL(network string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(network)) {
	case "", "mainnet":
		return MainnetConfigURL, nil
	case "testnet":
		return TestnetConfigURL, nil
	default:
		return "", fmt.Errorf("unknown network %q", network)
	}
}

// Client runs read-only get-methods against the TON network via liteservers.
// The connection pool is dialed on first use; a failed dial is not remembered.
// Callers waiting for an in-flight dial give up when their own ctx ends.
type Client struct {
	configURL string
	dial      func(ctx context.Context, configURL string) (*liteclient.ConnectionPool, error)

	mu      sync.Mutex
	pool    *liteclient.ConnectionPool
	api     ton.APIClientWrapped
	dialing chan struct{} // 非 nil 表示有拨号进行中，结束时关闭
	gen     uint64        // Close 时递增，丢弃 Close 之前发起的拨号结果
}

func New(configURL string) *Client {
	return &Client{configURL: configURL, dial: dialPool}
}

func dialPool(ctx context.Context, configURL string) (*liteclient.ConnectionPool, error) {
	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, configURL); err != nil {
		pool.Stop()
		return nil, err
	}
	return pool, nil
}

func (c *Client) connect(ctx context.Context) (ton.APIClientWrapped, error) {
	for {
		c.mu.Lock()
		if c.api != nil {
			api := c.api
			c.mu.Unlock()
			return api, nil
		}
		if wait := c.dialing; wait != nil {
			c.mu.Unlock()
			// 等待别人的拨号，但不超过自己的 deadline
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		done := make(chan struct{})
		c.dialing = done
		gen := c.gen
		c.mu.Unlock()

		// 拨号不持锁
		pool, err := c.dial(ctx, c.configURL)

		c.mu.Lock()
		c.dialing = nil
		close(done)
		if err != nil {
			c.mu.Unlock()
			return nil, fmt.Errorf("连接 liteserver 失败 (%s): %w", c.configURL, err)
		}
		if gen != c.gen {
			c.mu.Unlock()
			pool.Stop()
			return nil, errors.New("client closed while dialing")
		}
		// 不使用 WithRetry: 查询失败直接返回
		c.pool = pool
		c.api = ton.NewAPIClient(pool, ton.ProofCheckPolicyFast)
		api := c.api
		c.mu.Unlock()

		logger.Info("liteserver 连接池已建立", zap.String("config", c.configURL))
		return api, nil
	}
}

// RunGetMethod executes method on contract at the current masterchain block.
func (c *Client) RunGetMethod(ctx context.Context, contract *address.Address, method string, params ...any) ([]any, error) {
	api, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	block, err := api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 masterchain 信息失败: %w", err)
	}

	res, err := api.RunGetMethod(ctx, block, contract, method, params...)
	if err != nil {
		return nil, err
	}
	return res.AsTuple(), nil
}

// Close stops the connection pool if it was dialed.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.pool != nil {
		c.pool.Stop()
		c.pool, c.api = nil, nil
	}
}
