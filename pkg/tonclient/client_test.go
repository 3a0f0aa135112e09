package tonclient

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/liteclient"
)

func TestConfigURL(t *testing.T) {
	tests := []struct {
		network string
		want    string
	}{
		{"mainnet", MainnetConfigURL},
		{"", MainnetConfigURL},
		{"Testnet", TestnetConfigURL},
		{" testnet ", TestnetConfigURL},
	}
	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			got, err := ConfigURL(tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigURL_Unknown(t *testing.T) {
	_, err := ConfigURL("devnet")
	assert.Error(t, err)
}

func TestClose_NotDialed(t *testing.T) {
	c := New(MainnetConfigURL)
	assert.NotPanics(t, c.Close)
}

func TestConnect_WaiterRespectsOwnDeadline(t *testing.T) {
	c := New("test://config")
	started, release := make(chan struct{}), make(chan struct{})
	c.dial = func(ctx context.Context, _ string) (*liteclient.ConnectionPool, error) {
		close(started)
		<-release
		return nil, errors.New("dial failed")
	}

	first := make(chan error, 1)
	go func() {
		_, err := c.connect(context.Background())
		first <- err
	}()
	<-started

	// 第一次拨号卡住时，第二个调用方按自己的 deadline 返回
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	begin := time.Now()
	_, err := c.connect(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(begin), time.Second)

	close(release)
	assert.ErrorContains(t, <-first, "dial failed")
}

func TestConnect_FailureNotRemembered(t *testing.T) {
	c := New("test://config")
	var calls atomic.Int32
	c.dial = func(context.Context, string) (*liteclient.ConnectionPool, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("temporary")
		}
		return liteclient.NewConnectionPool(), nil
	}
	defer c.Close()

	_, err := c.connect(context.Background())
	require.Error(t, err)

	api, err := c.connect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, api)

	again, err := c.connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api, again)
	assert.Equal(t, int32(2), calls.Load())
}

func TestConnect_CloseDuringDial(t *testing.T) {
	c := New("test://config")
	started, release := make(chan struct{}), make(chan struct{})
	c.dial = func(context.Context, string) (*liteclient.ConnectionPool, error) {
		close(started)
		<-release
		return liteclient.NewConnectionPool(), nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.connect(context.Background())
		done <- err
	}()
	<-started
	c.Close()
	close(release)

	assert.Error(t, <-done)
	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Nil(t, c.api)
}
