package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"portfolio-cms-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps image uploads with Redis sliding windows: per client IP
// per minute, and per uploading user per day.
type UploadLimiter struct {
	maxPerMinute int
	maxPerDay    int
	client       func() *goredis.Client
}

// KEYS[1] = window key, ARGV[1] = limit, ARGV[2] = window seconds,
// ARGV[3] = now (unix). Returns 1 if the upload fits, 0 otherwise.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter defaults to 10 uploads/min per IP and 100/day per user.
func NewUploadLimiter(perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 100
	}
	return &UploadLimiter{maxPerMinute: perMin, maxPerDay: perDay, client: redis.Client}
}

// AllowUpload reports whether another upload fits and, if not, how many
// seconds to wait. Without Redis every upload is allowed.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip string, userID int64) (bool, int, error) {
	client := ul.client()
	if client == nil {
		return true, 0, nil
	}
	now := time.Now().Unix()

	allowed, err := ul.checkLimit(ctx, client, "ratelimit:upload:ip:"+ip, ul.maxPerMinute, 60, now)
	if err != nil {
		return false, 60, fmt.Errorf("upload rate limit check failed: %w", err)
	}
	if !allowed {
		return false, 60, nil
	}

	if userID > 0 {
		userKey := "ratelimit:upload:user:" + strconv.FormatInt(userID, 10)
		allowed, err = ul.checkLimit(ctx, client, userKey, ul.maxPerDay, 86400, now)
		if err != nil {
			return false, 3600, fmt.Errorf("upload rate limit check failed: %w", err)
		}
		if !allowed {
			return false, 3600, nil
		}
	}
	return true, 0, nil
}

func (ul *UploadLimiter) checkLimit(ctx context.Context, client *goredis.Client, key string, limit, window int, now int64) (bool, error) {
	result, err := client.Eval(ctx, uploadRateLimitScript, []string{key}, limit, window, now).Result()
	if err != nil {
		return false, err
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type from rate limit script")
	}
	return allowed == 1, nil
}
