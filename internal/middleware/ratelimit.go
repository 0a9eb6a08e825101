package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/celadonapp/celadon-backend/internal/database"
	"github.com/celadonapp/celadon-backend/pkg/clientip"
)

const (
	// AIRateLimitWindow is 60 seconds
	AIRateLimitWindow = 60 * time.Second
	// AIRateLimitMaxRequests caps analysis-backend calls per IP per window
	AIRateLimitMaxRequests = 30
	// AIRateLimitKeyPrefix is the Redis key prefix for rate limiting
	AIRateLimitKeyPrefix = "ratelimit:ai:"
)

// AIRateLimit throttles the routes that call the generative-language
// backend. The journal itself is never rate limited; only the AI-facing
// surface is. Redis failure fails open: an unreachable counter must not
// take the suggestion box down with it.
func AIRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ipAddress := clientip.RealClientIP(r)
		ctx := context.Background()
		rateLimitKey := AIRateLimitKeyPrefix + ipAddress

		count, err := database.RedisClient.Incr(ctx, rateLimitKey).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, rateLimitKey, AIRateLimitWindow)
		}

		if count > AIRateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprintf(w, `{"success":false,"message":"Too many analysis requests. Please slow down.","retry_after":%d}`, int(AIRateLimitWindow.Seconds()))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(AIRateLimitMaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(AIRateLimitMaxRequests)-count, 10))

		next.ServeHTTP(w, r)
	})
}
