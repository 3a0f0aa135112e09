package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxIdleEntries 超过这个数量时清理长时间未访问的 IP
const maxIdleEntries = 10000

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter 单机令牌桶限流: 每个 key 一个 rate.Limiter，
// 桶容量为 max，每 window/max 补充一个令牌
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	if max < 1 {
		max = 1
	}
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		window:   window,
		now:      time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	v, ok := m.visitors[key]
	if !ok {
		if len(m.visitors) >= maxIdleEntries {
			m.evict(now)
		}
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// evict 删除超过一个窗口未出现的 key，此时它们的桶必然已经补满
func (m *MemoryLimiter) evict(now time.Time) {
	for k, v := range m.visitors {
		if now.Sub(v.lastSeen) > m.window {
			delete(m.visitors, k)
		}
	}
}
