package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/pkg/config"
	"food-delivery-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = errs.New("too many requests")

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	limit     rate.Limit
	burst     int
	now       func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func NewLoginRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return NewRateLimiter(cfg.LoginRPS, cfg.LoginBurst)
}

func (r *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.limit <= 0 {
			c.Next()
			return
		}
		res := r.reserve(c.ClientIP())
		if delay := res.DelayFrom(r.now()); delay > 0 {
			res.CancelAt(r.now())
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrTooManyRequests, "Too many requests", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) reserve(key string) *rate.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) > limiterIdleTTL {
		for k, v := range r.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(r.visitors, k)
			}
		}
		r.lastSweep = now
	}

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.ReserveN(now, 1)
}
