package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// 登录限流默认参数：每 IP 每分钟最多 10 次尝试
const (
	DefaultLoginAttempts = 10
	DefaultLoginWindow   = time.Minute
)

// limiter 按客户端 IP 记录窗口内的尝试时间
type limiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	attempts map[string][]time.Time
}

// prune 丢弃窗口外的记录并返回剩余数量，空则整个删除
// 调用方必须持有 mu
func (l *limiter) prune(ip string, now time.Time) int {
	cutoff := now.Add(-l.window)
	kept := l.attempts[ip][:0]
	for _, t := range l.attempts[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.attempts, ip)
		return 0
	}
	l.attempts[ip] = kept
	return len(kept)
}

// allow 判断本次尝试是否放行，放行则记录时间戳
func (l *limiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.prune(ip, now) >= l.max {
		return false
	}
	l.attempts[ip] = append(l.attempts[ip], now)
	return true
}

// cleanup 按窗口长度周期性清理不再活跃的 IP
func (l *limiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip := range l.attempts {
			l.prune(ip, now)
		}
		l.mu.Unlock()
	}
}

// LoginRateLimit 登录接口限流中间件
// 窗口内超过 maxAttempts 次返回 429，响应体与 JWT 中间件保持同一结构
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	if maxAttempts <= 0 {
		maxAttempts = DefaultLoginAttempts
	}
	if window <= 0 {
		window = DefaultLoginWindow
	}

	l := &limiter{
		window:   window,
		max:      maxAttempts,
		attempts: make(map[string][]time.Time),
	}
	go l.cleanup()

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
